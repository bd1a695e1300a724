package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the wire layout of appointment dates: civil time with
// minute precision and no zone, as produced by datetime-local inputs.
const LocalTimeLayout = "2006-01-02T15:04"

const localTimeLayoutSeconds = "2006-01-02T15:04:05"

// LocalTime is a wall-clock timestamp without a time zone. The wall clock is
// carried in UTC so that formatting returns exactly what was parsed.
type LocalTime struct {
	time.Time
}

// ParseLocalTime parses "2006-01-02T15:04", with optional seconds.
func ParseLocalTime(value string) (LocalTime, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{LocalTimeLayout, localTimeLayoutSeconds} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return LocalTime{Time: t}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid local time %q (use %s)", value, LocalTimeLayout)
}

// MustParseLocalTime is ParseLocalTime for literals known to be valid.
func MustParseLocalTime(value string) LocalTime {
	t, err := ParseLocalTime(value)
	if err != nil {
		panic(err)
	}
	return t
}

func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	if t.Second() != 0 {
		return t.Format(localTimeLayoutSeconds)
	}
	return t.Format(LocalTimeLayout)
}

// MarshalJSON implements json.Marshaler
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. An empty string decodes to the zero time.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("local time must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*t = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
