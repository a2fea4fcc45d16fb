package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// ParseTime accepts RFC 3339 timestamps and plain calendar dates. Calendar
// dates are read as midnight UTC.
func ParseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutISO, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want RFC 3339 or %s", v, layoutISO)
	}
	return t, nil
}

type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
