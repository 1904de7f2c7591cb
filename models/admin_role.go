package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a JSON string array in a text column so it works on
// every configured backend.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = StringList{}
		return nil
	}
	return errors.New("unsupported type for StringList")
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// AdminRole is a PIN-authenticated dashboard login. An empty permission
// list means unrestricted access.
type AdminRole struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Role        string     `gorm:"type:varchar(20);not null" json:"role"` // owner, manager, receptionist
	PIN         string     `gorm:"not null" json:"-"`                     // bcrypt hash
	Permissions StringList `gorm:"type:text" json:"permissions"`
}

func (r *AdminRole) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
