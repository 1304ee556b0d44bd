package models

import "time"

// Message is a direct or channel message. SenderName is denormalized by the
// gateway join so digests don't need a second lookup.
type Message struct {
	ID          string
	SenderID    string
	SenderName  string
	RecipientID string
	ChannelID   string
	Content     string
	Read        bool
	Created     time.Time
}
