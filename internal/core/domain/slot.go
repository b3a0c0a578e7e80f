package domain

import "time"

// Фиксированные коды причин. Причина может быть и произвольной строкой:
// порог предупреждения и названия конфликтующих событий подставляются
// динамически
const (
	SlotReasonAvailable = "available"
	SlotReasonPast      = "date in the past"
	SlotReasonTooFar    = "date too far in the future"
	SlotReasonClosed    = "non-available time"
	SlotReasonConflict  = "conflicts with another event"
)

type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason"`
}
