package domain

import "time"

// OutboxMessage — доменное событие, ожидающее публикации из transactional outbox.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats — сводка по неопубликованному backlog.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// OutboxRepository сохраняет события вместе с мутацией и выдаёт их воркеру.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxPublisher доставляет событие во внешний брокер.
// Повторная публикация одного события допустима (at-least-once).
type OutboxPublisher interface {
	Publish(event OutboxMessage) error
}
