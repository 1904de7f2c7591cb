package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	Color      string    `gorm:"type:varchar(7);default:'#cccccc'" json:"color"` // hex
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	BaseSalary float64   `gorm:"type:decimal(10,2);default:0.0" json:"baseSalary"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
