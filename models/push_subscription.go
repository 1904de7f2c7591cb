package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PushSubscription is a stored browser web-push endpoint. Subscriptions
// whose endpoint reports gone/not-found are pruned on broadcast.
type PushSubscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Endpoint string    `gorm:"type:varchar(500);uniqueIndex;not null" json:"endpoint"`
	P256dh   string    `gorm:"not null" json:"p256dh"`
	Auth     string    `gorm:"not null" json:"auth"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *PushSubscription) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
