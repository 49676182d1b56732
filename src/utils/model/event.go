package model

import (
	"time"

	"github.com/jackc/pgtype"
)

const TableEvent = "events"

// Event is the append-only audit log, one row per emitted registry event.
type Event struct {
	Sequence  uint64 `gorm:"primaryKey"`
	EventId   string
	Kind      string
	Registry  string
	Caller    string
	Timestamp time.Time
	Payload   pgtype.JSONB
}

func (Event) TableName() string {
	return TableEvent
}
