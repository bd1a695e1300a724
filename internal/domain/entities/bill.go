package entities

// Bill is derived from an appointment and the current patient and doctor
// records. It is never stored.
type Bill struct {
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	VisitFee    float64   `json:"visitFee"`
	Date        LocalTime `json:"date"`
}

// Total is the amount due. A visit fee is the only line item.
func (b *Bill) Total() float64 {
	return b.VisitFee
}
