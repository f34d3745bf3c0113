package models

import (
	"github.com/google/uuid"
)

type Clinic struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string

	WorkingHours          JSONB `gorm:"type:jsonb;default:'{}'"`
	BookingReminders      bool  `gorm:"default:true"`
	WhatsAppNotifications bool  `gorm:"default:false"`
	SMSNotifications      bool  `gorm:"default:false"`
}
