// internal/core/domain/session_log.go
package domain

import (
	"fmt"
	"time"
)

// LogTimestampLayout is the timestamp layout used in session log records
const LogTimestampLayout = "2006-01-02 15:04:05.000000"

// SessionLog collects human-readable records of stock changes.
// Each caller owns its own log; nothing is shared between sessions.
type SessionLog struct {
	records []string
}

// NewSessionLog returns an empty log
func NewSessionLog() *SessionLog {
	return &SessionLog{}
}

// Append adds a record
func (l *SessionLog) Append(record string) {
	l.records = append(l.records, record)
}

// Records returns a copy of the records in append order
func (l *SessionLog) Records() []string {
	out := make([]string, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records
func (l *SessionLog) Len() int {
	return len(l.records)
}

// AddedRecord formats the record written for a successful add
func AddedRecord(at time.Time, item ItemName, qty Quantity) string {
	return fmt.Sprintf("%s: Added %d of %s", at.Format(LogTimestampLayout), qty, item)
}
