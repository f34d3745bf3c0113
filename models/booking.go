package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Active statuses occupy a doctor's calendar for overlap purposes.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the booking lifecycle. Cancellation is a status
// transition, never a delete.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	DoctorID    *uuid.UUID `gorm:"type:uuid;index:idx_doctor_day,priority:1"`
	TreatmentID uuid.UUID  `gorm:"type:uuid;index;not null"`

	// Canonical values only: YYYY-MM-DD and HH:MM:SS. Raw inputs are
	// normalized before they reach this struct.
	BookingDate    string `gorm:"type:date;not null;index:idx_doctor_day,priority:2"`
	BookingTime    string `gorm:"type:time;not null"`
	BookingEndTime string `gorm:"type:time;not null"`

	SessionCount    int     `gorm:"default:1"`
	UnitPrice       float64 `gorm:"type:decimal(10,2);not null"`
	DiscountPercent int     `gorm:"default:0"`
	TotalAmount     float64 `gorm:"type:decimal(10,2);not null"`

	Status BookingStatus `gorm:"type:varchar(20);default:'pending';index"`
	Source string        `gorm:"type:varchar(20);default:'web'"` // web, admin, import
	Notes  string

	Customer  *Customer `gorm:"foreignKey:CustomerID"`
	Doctor    *Doctor   `gorm:"foreignKey:DoctorID"`
	Treatment Treatment `gorm:"foreignKey:TreatmentID"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
