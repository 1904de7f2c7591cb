package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `gorm:"not null" json:"name"`
	Phone    string     `json:"phone"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday"`
	Notes    string     `json:"notes"`

	// Running balance, must never go negative.
	LoyaltyPoints int     `gorm:"default:0" json:"loyaltyPoints"`
	TotalVisits   int     `gorm:"default:0" json:"totalVisits"`
	TotalSpent    float64 `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`

	ReferredByID *uuid.UUID `gorm:"type:uuid" json:"referredById"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type LoyaltyRedemption struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	Points   int       `gorm:"not null" json:"points"`
	Reward   string    `json:"reward"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *LoyaltyRedemption) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
