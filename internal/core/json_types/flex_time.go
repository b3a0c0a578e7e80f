package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime - момент времени из внешнего календаря. Провайдер может
// прислать зонированный момент (RFC3339), дату со временем без зоны или
// только дату (событие на весь день). Беззонные значения парсятся как
// UTC и должны быть приведены к локальной зоне через In
type FlexTime struct {
	Time time.Time
	// Значение пришло только датой, без времени
	DateOnly bool
	// Значение пришло с таймзоной
	Zoned bool
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if parsed, err := time.Parse(time.RFC3339, str); err == nil {
		*t = FlexTime{Time: parsed, Zoned: true}
		return nil
	}

	if parsed, err := time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC); err == nil {
		*t = FlexTime{Time: parsed}
		return nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", str, time.UTC)
	if err != nil {
		return fmt.Errorf("failed to parse calendar time: %v", err)
	}

	*t = FlexTime{Time: parsed, DateOnly: true}
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.DateOnly {
		return json.Marshal(t.Time.Format("2006-01-02"))
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// In возвращает момент в указанной зоне. Беззонные значения не
// конвертируются, а пересобираются с теми же полями времени в целевой
// зоне
func (t FlexTime) In(loc *time.Location) time.Time {
	if t.Zoned {
		return t.Time.In(loc)
	}
	return time.Date(t.Time.Year(), t.Time.Month(), t.Time.Day(),
		t.Time.Hour(), t.Time.Minute(), t.Time.Second(), 0, loc)
}
