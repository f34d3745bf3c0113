// services/booking_service.go
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

var (
	ErrValidation        = errors.New("invalid booking input")
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSlotConflict      = errors.New("doctor already has a booking in that slot")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// BookingInput carries a booking request from either the public confirm flow
// or the admin creation form. Date and Time are raw strings as submitted;
// normalization happens here so both paths produce the same canonical entity.
type BookingInput struct {
	TreatmentID  uuid.UUID
	DoctorID     *uuid.UUID
	CustomerID   *uuid.UUID
	SessionCount int
	Date         string
	Time         string

	// Admin manual entry may fix the commercial terms; nil means derive.
	UnitPrice       *float64
	DiscountPercent *int

	Status models.BookingStatus
	Source string
	Notes  string
}

type BookingService struct {
	bookings   BookingStore
	treatments TreatmentStore
	doctors    DoctorStore
	customers  CustomerStore
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		bookings:   NewBookingStore(db),
		treatments: NewTreatmentStore(db),
		doctors:    NewDoctorStore(db),
		customers:  NewCustomerStore(db),
	}
}

// NewBookingServiceWithStores allows injecting mocks for tests.
func NewBookingServiceWithStores(b BookingStore, t TreatmentStore, d DoctorStore, c CustomerStore) *BookingService {
	return &BookingService{bookings: b, treatments: t, doctors: d, customers: c}
}

// Create validates, prices and persists a booking. The overlap check runs
// inside a transaction holding a row lock on the doctor, so two concurrent
// requests for the same calendar are serialized; the partial unique index on
// (doctor_id, booking_date, booking_time) backstops exact-slot duplicates.
func (s *BookingService) Create(ctx context.Context, input BookingInput) (*models.Booking, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	startLabel, err := utils.ParseTime(input.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	treatment, err := s.treatments.FindActiveByID(ctx, input.TreatmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTreatmentNotFound
		}
		return nil, err
	}

	if input.CustomerID != nil {
		if _, err := s.customers.FindByID(ctx, *input.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
	}

	sessionCount := utils.ClampSessionCount(input.SessionCount)
	quote := utils.PriceBreakdown(treatment.BasePrice, sessionCount, input.UnitPrice, input.DiscountPercent)

	startMin, err := utils.MinutesOfDay(startLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	endMin := startMin + treatment.DurationMinutes
	if endMin >= 24*60 {
		return nil, fmt.Errorf("%w: booking would run past midnight", ErrValidation)
	}
	endLabel := utils.MinutesLabel(endMin)

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}
	source := input.Source
	if source == "" {
		source = "web"
	}

	booking := &models.Booking{
		CustomerID:      input.CustomerID,
		DoctorID:        input.DoctorID,
		TreatmentID:     treatment.ID,
		BookingDate:     date,
		BookingTime:     startLabel,
		BookingEndTime:  endLabel,
		SessionCount:    sessionCount,
		UnitPrice:       quote.UnitPrice,
		DiscountPercent: quote.DiscountPercent,
		TotalAmount:     quote.TotalAmount,
		Status:          status,
		Source:          source,
		Notes:           input.Notes,
	}

	err = s.bookings.InTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.assertNoOverlap(ctx, tx, input.DoctorID, date, startLabel, endLabel); err != nil {
			return err
		}
		return s.bookings.Create(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// assertNoOverlap is the authoritative gate immediately before insert. The
// availability query is advisory and can be stale by the time the user
// submits. Without a doctor there is no calendar to guard, so the check is a
// no-op; a conflict can only surface later when a doctor is assigned.
func (s *BookingService) assertNoOverlap(ctx context.Context, tx *gorm.DB, doctorID *uuid.UUID, date, startLabel, endLabel string) error {
	if doctorID == nil {
		return nil
	}

	if _, err := s.doctors.FindByIDForUpdate(ctx, tx, *doctorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}

	start, err := utils.MinutesOfDay(startLabel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := utils.MinutesOfDay(endLabel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.bookings.ActiveByDoctorAndDate(ctx, tx, *doctorID, date)
	if err != nil {
		return err
	}
	for _, b := range existing {
		bStart, err := utils.MinutesOfDay(b.BookingTime)
		if err != nil {
			return err
		}
		bEnd, err := utils.MinutesOfDay(b.BookingEndTime)
		if err != nil {
			return err
		}
		if utils.Overlaps(start, end, bStart, bEnd) {
			return ErrSlotConflict
		}
	}
	return nil
}

// Get loads a booking by id.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// AssignDoctor attaches a doctor to a booking created without one. The
// booking skipped the overlap check at creation, so the full guard runs here
// against the target doctor's calendar.
func (s *BookingService) AssignDoctor(ctx context.Context, id uuid.UUID, doctorID uuid.UUID) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.bookings.InTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.assertNoOverlap(ctx, tx, &doctorID, booking.BookingDate, booking.BookingTime, booking.BookingEndTime); err != nil {
			return err
		}
		return s.bookings.UpdateDoctor(ctx, tx, id, doctorID)
	})
	if err != nil {
		return nil, err
	}
	booking.DoctorID = &doctorID
	return booking, nil
}

// Transition moves a booking to the next lifecycle status, enforcing the
// legal transitions. Cancelled and completed are terminal.
func (s *BookingService) Transition(ctx context.Context, id uuid.UUID, next models.BookingStatus) (*models.Booking, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	if err := s.bookings.UpdateStatus(ctx, nil, id, next); err != nil {
		return nil, err
	}
	booking.Status = next
	return booking, nil
}
