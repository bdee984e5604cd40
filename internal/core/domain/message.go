package domain

import "time"

// Message is a directed edge between two users.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Sender     *UserRef  `json:"sender,omitempty"`
	Receiver   *UserRef  `json:"receiver,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
