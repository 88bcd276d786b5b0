package queue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/iliyamo/court-reservation/internal/model"
)

// EventLog appends booking events to a plain text file, one line per
// event, in a format meant for people tailing the file.
type EventLog struct {
	path string
	mu   sync.Mutex
}

// NewEventLog returns an EventLog writing to path.  The parent directory
// is created on first write.
func NewEventLog(path string) *EventLog { return &EventLog{path: path} }

// Handle is the Handler for the booking event queue.
func (l *EventLog) Handle(_ context.Context, body []byte) error {
	ev, err := decode[model.BookingEvent](body)
	if err != nil {
		return err
	}
	if ev.Type == "" || ev.BookingID == 0 {
		return fmt.Errorf("incomplete booking event %q", ev.ID)
	}
	return l.Append(ev)
}

// Append writes ev to the log file.
func (l *EventLog) Append(ev model.BookingEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatEvent(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatEvent renders ev as a single log line ending in a newline.
func FormatEvent(ev model.BookingEvent) string {
	return fmt.Sprintf("[%s] %s | booking_id=%d | ref=%s | user_id=%d | court_id=%d | date=%s | slot=%s-%s | status=%s | total=%d cents | actor_id=%d\n",
		ev.OccurredAt, ev.Type, ev.BookingID, ev.Reference, ev.UserID, ev.CourtID,
		ev.BookingDate, ev.StartTime, ev.EndTime, ev.Status, ev.TotalAmountCents, ev.ActorID)
}
