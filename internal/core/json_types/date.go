package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime - момент времени в JSON, строго RFC3339
type DateTime struct {
	Time time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return fmt.Errorf("failed to parse datetime: %v", err)
	}

	t.Time = parsed
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Date - календарная дата без времени
type Date struct {
	Time time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	t.Time = parsed
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("2006-01-02"))
}
