package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	Specialty string
	Phone     string
	Locations StringList `gorm:"type:jsonb;default:'[]'"`
	IsActive  bool       `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:DoctorID"`

	gorm.Model
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = uuid.New()
	return
}
