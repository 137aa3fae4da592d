package models

import (
	"time"
)

// MaxMessageLength is the longest accepted message content, in runes.
const MaxMessageLength = 1000

// Message is one directed entry of a conversation. Rows are append-only: the
// only mutation ever applied is flipping IsRead when the receiver opens the
// conversation.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"size:1000;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false;index" json:"is_read"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}
