package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a direct message between two users, optionally scoped to a
// group. The log is append-only except for the read and edited flags;
// rows older than the retention window are purged by the background job.
type Message struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SenderID    uint           `gorm:"not null;index" json:"sender_id"`
	Sender      *User          `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID uint           `gorm:"not null;index" json:"recipient_id"`
	Recipient   *User          `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	GroupID     *uint          `gorm:"index" json:"group_id,omitempty"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	IsRead      bool           `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	IsEdited    bool           `gorm:"default:false" json:"is_edited"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// MessageRetention is how long messages are kept before the purge job
// removes them.
const MessageRetention = 30 * 24 * time.Hour
