// services/availability_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"clinicbook-backend/models"
	"clinicbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityService answers "which start times are free for this doctor on
// this date for this treatment". It never mutates state and can be called
// repeatedly for speculative searches across doctors and dates; the booking
// service re-checks at insert time.
type AvailabilityService struct {
	bookings   BookingStore
	treatments TreatmentStore
	doctors    DoctorStore
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{
		bookings:   NewBookingStore(db),
		treatments: NewTreatmentStore(db),
		doctors:    NewDoctorStore(db),
	}
}

// NewAvailabilityServiceWithStores allows injecting mocks for tests.
func NewAvailabilityServiceWithStores(b BookingStore, t TreatmentStore, d DoctorStore) *AvailabilityService {
	return &AvailabilityService{bookings: b, treatments: t, doctors: d}
}

// AvailableSlots returns the free start labels, ascending, for the doctor on
// the given date, sized for the treatment's duration.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, doctorID uuid.UUID, rawDate string, treatmentID uuid.UUID) ([]string, error) {
	date, err := utils.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	treatment, err := s.treatments.FindActiveByID(ctx, treatmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTreatmentNotFound
		}
		return nil, err
	}

	if _, err := s.doctors.FindActiveByID(ctx, doctorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	existing, err := s.bookings.ActiveByDoctorAndDate(ctx, nil, doctorID, date)
	if err != nil {
		return nil, err
	}

	booked, err := bookedRanges(existing)
	if err != nil {
		return nil, err
	}
	return utils.FreeSlots(treatment.DurationMinutes, booked), nil
}

func bookedRanges(bookings []models.Booking) ([]utils.TimeRange, error) {
	ranges := make([]utils.TimeRange, 0, len(bookings))
	for _, b := range bookings {
		start, err := utils.MinutesOfDay(b.BookingTime)
		if err != nil {
			return nil, err
		}
		end, err := utils.MinutesOfDay(b.BookingEndTime)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, utils.TimeRange{Start: start, End: end})
	}
	return ranges, nil
}
