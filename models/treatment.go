package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Treatment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`

	Name            string  `gorm:"not null"`
	Description     string
	BasePrice       float64 `gorm:"type:decimal(10,2);not null"`
	DurationMinutes int     `gorm:"not null"`
	SessionOptions  IntList `gorm:"type:jsonb;default:'[1,3,6,10]'"`
	IsActive        bool    `gorm:"default:true"`

	Category *Category `gorm:"foreignKey:CategoryID"`
	Bookings []Booking `gorm:"foreignKey:TreatmentID"`

	gorm.Model
}

func (t *Treatment) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	return
}
