package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format for every calendar date in the API.
const DateLayout = "2006-01-02"

// Date is a calendar date stored in a postgres date column and rendered
// as YYYY-MM-DD in JSON.
type Date struct {
	datatypes.Date
}

func NewDate(t time.Time) Date {
	return Date{datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return time.Time(d.Date).Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
