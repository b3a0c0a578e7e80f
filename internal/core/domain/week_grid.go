package domain

import (
	"encoding/json"
	"time"
)

type RowKind int

const (
	// Строка со слотами, по одному на каждый включенный день недели
	RowKindSlots RowKind = iota
	// Маркер разрыва вместо одной или нескольких подряд полностью
	// недоступных строк
	RowKindGap
)

// WeekRow - явный tagged-вариант строки сетки: либо слоты, либо разрыв
type WeekRow struct {
	Kind  RowKind
	Slots []Slot
}

func SlotsRow(slots []Slot) WeekRow {
	return WeekRow{Kind: RowKindSlots, Slots: slots}
}

func GapRow() WeekRow {
	return WeekRow{Kind: RowKindGap}
}

func (r WeekRow) IsGap() bool {
	return r.Kind == RowKindGap
}

func (r WeekRow) MarshalJSON() ([]byte, error) {
	if r.Kind == RowKindGap {
		return json.Marshal(map[string]bool{"gap": true})
	}
	return json.Marshal(map[string][]Slot{"slots": r.Slots})
}

// WeekGrid - свернутая сетка одной недели, чистый результат вычисления
type WeekGrid struct {
	// Якорная дата недели, полночь понедельника в локальной таймзоне
	Monday time.Time `json:"monday"`
	// Включенные колонки в порядке понедельник - воскресенье,
	// уже после выбрасывания пустых и свернутых дней
	Weekdays []time.Weekday `json:"weekdays"`
	Rows     []WeekRow      `json:"rows"`
	// Хотя бы один слот недели доступен
	HasAvailableSlot bool `json:"hasAvailableSlot"`
}
