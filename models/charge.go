package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Charge is a salon expense ledger entry. Never linked to appointments.
type Charge struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Category    string    `gorm:"not null" json:"category"`
	Description string    `json:"description"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        string    `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Charge) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type ExpenseCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (e *ExpenseCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// StaffDeduction is subtracted from a staff member's payable commission.
type StaffDeduction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StaffID     uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`
	StaffName   string    `gorm:"not null" json:"staffName"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        string    `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"createdAt"`
}

func (d *StaffDeduction) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
