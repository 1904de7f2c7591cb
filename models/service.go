package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Price    float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration int       `gorm:"default:30" json:"duration"` // in minutes
	Category string    `gorm:"default:'General'" json:"category"`

	// Decremented by 1 the first time an appointment for this service is paid.
	LinkedProductID *uuid.UUID `gorm:"type:uuid;index" json:"linkedProductId"`

	// Staff share of the total; defaults to services.DefaultCommissionPercent.
	CommissionPercent       float64 `gorm:"default:50" json:"commissionPercent"`
	LoyaltyPointsMultiplier float64 `gorm:"default:1" json:"loyaltyPointsMultiplier"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
