package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name              string    `gorm:"uniqueIndex;not null" json:"name"`
	Quantity          int       `gorm:"default:0" json:"quantity"`
	LowStockThreshold int       `gorm:"default:5" json:"lowStockThreshold"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
