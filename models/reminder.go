package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Type     string    `gorm:"type:varchar(20);not null"` // booking
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	return
}
