package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessSettings is a singleton row read by the availability checker and
// the public booking page, mutated only through the settings endpoint.
type BusinessSettings struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SalonName   string     `gorm:"default:'My Salon'" json:"salonName"`
	Currency    string     `gorm:"type:varchar(8);default:'USD'" json:"currency"`
	OpeningTime string     `gorm:"type:varchar(5);default:'09:00'" json:"openingTime"` // HH:MM
	ClosingTime string     `gorm:"type:varchar(5);default:'19:00'" json:"closingTime"` // HH:MM
	WorkingDays StringList `gorm:"type:text" json:"workingDays"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *BusinessSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
