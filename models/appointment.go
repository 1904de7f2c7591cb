package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is a booking on the calendar. Date and StartTime are stored
// as strings so range filters compare the same on every configured
// backend. Service and staff names are cached at booking time; renames are
// synced by the staff controller.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date      string    `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD
	StartTime string    `gorm:"type:varchar(5);not null" json:"startTime"`   // HH:MM
	Duration  int       `gorm:"default:30" json:"duration"`                  // minutes

	ClientName string     `gorm:"not null" json:"clientName"`
	ClientID   *uuid.UUID `gorm:"type:uuid;index" json:"clientId"`

	ServiceName string `gorm:"not null" json:"serviceName"`

	StaffID   uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`
	StaffName string    `gorm:"not null" json:"staffName"`

	Price float64 `gorm:"type:decimal(10,2);default:0.0" json:"price"`
	Total float64 `gorm:"type:decimal(10,2);default:0.0" json:"total"`

	Paid                bool `gorm:"default:false" json:"paid"`
	LoyaltyPointsEarned int  `gorm:"default:0" json:"loyaltyPointsEarned"`

	// Session name of the dashboard role that created the booking; empty
	// for the public channel.
	CreatedBy string `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
