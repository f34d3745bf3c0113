package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedByUserID *uuid.UUID `gorm:"type:uuid;index"`

	Name       string `gorm:"not null"`
	Phone      string `gorm:"not null;uniqueIndex"`
	Email      string
	Notes      string
	TotalSpent float64 `gorm:"type:decimal(10,2);default:0.0"`
	LastVisit  *time.Time
	IsActive   bool `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}
