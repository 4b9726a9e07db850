package kafka

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBorrowed EventType = "BORROWED"
	EventReturned EventType = "RETURNED"
)

// Simplex is the direction of the stock change caused by the event.
type Simplex string

const (
	SimplexUp   Simplex = "UP"
	SimplexDown Simplex = "DOWN"
)

type EventLifecycle struct {
	EventID    uuid.UUID  `json:"eventId"`
	Timestamp  time.Time  `json:"timestamp"`
	EventType  EventType  `json:"eventType"`
	Simplex    Simplex    `json:"simplex"`
	BorrowID   int64      `json:"borrowId"`
	UserID     int64      `json:"userId"`
	BookID     int64      `json:"bookId"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

func NewEventLifecycle(eventType EventType, borrowID, userID, bookID int64, dueAt time.Time, returnedAt *time.Time) EventLifecycle {
	simplex := SimplexDown
	if eventType == EventReturned {
		simplex = SimplexUp
	}
	return EventLifecycle{
		EventID:    uuid.New(),
		Timestamp:  time.Now().UTC(),
		EventType:  eventType,
		Simplex:    simplex,
		BorrowID:   borrowID,
		UserID:     userID,
		BookID:     bookID,
		DueAt:      dueAt,
		ReturnedAt: returnedAt,
	}
}
