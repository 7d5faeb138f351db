package entity

import "time"

// Origin who authored a message
type Origin string

const (
	OriginSubject Origin = "subject"
	OriginVisitor Origin = "visitor"
)

// Message domain entity, never mutated after creation
type Message struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Text      string    `json:"text"`
	Origin    Origin    `json:"origin"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsVisitor reports whether the visitor wrote the message
func (m Message) IsVisitor() bool {
	return m.Origin == OriginVisitor
}

// Clock render-formatted time of day, e.g. "09:41"
func (m Message) Clock() string {
	return m.CreatedAt.Local().Format("15:04")
}

// Snapshot read-only view of the conversation for presentation
type Snapshot struct {
	Messages         []Message `json:"messages"`
	AwaitingResponse bool      `json:"awaitingResponse"`
}
