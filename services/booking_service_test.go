package services

import (
	"context"
	"testing"

	"clinicbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock stores ---

type mockBookingStore struct {
	active  []models.Booking
	created *models.Booking
	byID    map[uuid.UUID]*models.Booking
	updated map[uuid.UUID]models.BookingStatus
}

func (m *mockBookingStore) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	m.created = booking
	return nil
}

func (m *mockBookingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if b, ok := m.byID[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingStore) ActiveByDoctorAndDate(ctx context.Context, tx *gorm.DB, doctorID uuid.UUID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.active {
		if b.DoctorID != nil && *b.DoctorID == doctorID && b.BookingDate == date && b.Status.Active() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingStore) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error {
	if m.updated == nil {
		m.updated = make(map[uuid.UUID]models.BookingStatus)
	}
	m.updated[id] = status
	return nil
}

func (m *mockBookingStore) UpdateDoctor(ctx context.Context, tx *gorm.DB, id uuid.UUID, doctorID uuid.UUID) error {
	return nil
}

func (m *mockBookingStore) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type mockTreatmentStore struct {
	treatment *models.Treatment
}

func (m *mockTreatmentStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	if m.treatment == nil || m.treatment.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.treatment, nil
}

type mockDoctorStore struct {
	doctor *models.Doctor
	locked bool
}

func (m *mockDoctorStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	if m.doctor == nil || m.doctor.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.doctor, nil
}

func (m *mockDoctorStore) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Doctor, error) {
	m.locked = true
	return m.FindActiveByID(ctx, id)
}

type mockCustomerStore struct {
	customer *models.Customer
}

func (m *mockCustomerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if m.customer == nil || m.customer.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.customer, nil
}

func (m *mockCustomerStore) FindOrCreateByPhone(ctx context.Context, name, phone string) (*models.Customer, error) {
	return m.customer, nil
}

// --- Fixtures ---

func fixtureTreatment(durationMinutes int, basePrice float64) *models.Treatment {
	return &models.Treatment{
		ID:              uuid.New(),
		Name:            "Deep Tissue Massage",
		BasePrice:       basePrice,
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}
}

func fixtureDoctor() *models.Doctor {
	return &models.Doctor{ID: uuid.New(), Name: "Dr. Patel", IsActive: true}
}

func existingBooking(doctorID uuid.UUID, date, start, end string, status models.BookingStatus) models.Booking {
	return models.Booking{
		ID:             uuid.New(),
		DoctorID:       &doctorID,
		BookingDate:    date,
		BookingTime:    start,
		BookingEndTime: end,
		Status:         status,
	}
}

func newTestService(b *mockBookingStore, t *mockTreatmentStore, d *mockDoctorStore, c *mockCustomerStore) *BookingService {
	if c == nil {
		c = &mockCustomerStore{}
	}
	return NewBookingServiceWithStores(b, t, d, c)
}

// --- Tests ---

func TestCreate_RejectsOverlap(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "10:00:00", "10:30:00", models.StatusConfirmed),
	}}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor}, nil)

	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &doctor.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "10:15",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, bookings.created)
}

func TestCreate_AcceptsTouchingBoundary(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "10:00:00", "10:30:00", models.StatusConfirmed),
	}}
	doctors := &mockDoctorStore{doctor: doctor}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, doctors, nil)

	booking, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &doctor.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "10:30",
	})

	assert.NoError(t, err)
	assert.Equal(t, "10:30:00", booking.BookingTime)
	assert.Equal(t, "11:00:00", booking.BookingEndTime)
	assert.True(t, doctors.locked, "doctor row must be locked during the check")
}

func TestCreate_NoDoctorSkipsOverlapCheck(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	// Calendar is fully booked, but without a doctor there is nothing to guard.
	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "09:00:00", "18:00:00", models.StatusConfirmed),
	}}
	doctors := &mockDoctorStore{doctor: doctor}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, doctors, nil)

	booking, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "10:15",
	})

	assert.NoError(t, err)
	assert.Nil(t, booking.DoctorID)
	assert.False(t, doctors.locked)
}

func TestCreate_EndToEndConflictThenSuccess(t *testing.T) {
	treatment := fixtureTreatment(45, 120)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "14:00:00", "14:45:00", models.StatusConfirmed),
	}}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor}, nil)

	// 2:00 pm normalizes to 14:00:00 and collides exactly with the
	// existing appointment.
	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &doctor.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "2:00 pm",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// 3:00 pm is free.
	booking, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &doctor.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "3:00 pm",
	})
	assert.NoError(t, err)
	assert.Equal(t, "15:00:00", booking.BookingTime)
	assert.Equal(t, "15:45:00", booking.BookingEndTime)
	assert.Equal(t, 120.00, booking.UnitPrice)
	assert.Equal(t, 0, booking.DiscountPercent)
	assert.Equal(t, 120.00, booking.TotalAmount)
	assert.Equal(t, models.StatusPending, booking.Status)
}

func TestCreate_PricesSessionPackage(t *testing.T) {
	treatment := fixtureTreatment(30, 100)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor}, nil)

	booking, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &doctor.ID,
		SessionCount: 3,
		Date:         "2025-07-01",
		Time:         "11:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, booking.SessionCount)
	assert.Equal(t, 75.00, booking.UnitPrice)
	assert.Equal(t, 25, booking.DiscountPercent)
	assert.Equal(t, 225.00, booking.TotalAmount)
}

func TestCreate_KeepsExplicitCommercialTerms(t *testing.T) {
	treatment := fixtureTreatment(30, 100)
	doctor := fixtureDoctor()

	unit := 60.00
	discount := 40
	svc := newTestService(&mockBookingStore{}, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor}, nil)

	booking, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:     treatment.ID,
		DoctorID:        &doctor.ID,
		SessionCount:    3,
		Date:            "2025-07-01",
		Time:            "11:00",
		UnitPrice:       &unit,
		DiscountPercent: &discount,
	})

	assert.NoError(t, err)
	assert.Equal(t, 60.00, booking.UnitPrice)
	assert.Equal(t, 40, booking.DiscountPercent)
	assert.Equal(t, 180.00, booking.TotalAmount)
}

func TestCreate_UnparseableDateIsHardError(t *testing.T) {
	treatment := fixtureTreatment(30, 100)
	svc := newTestService(&mockBookingStore{}, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{}, nil)

	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		SessionCount: 1,
		Date:         "someday",
		Time:         "11:00",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "eleven",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_RejectsRunPastMidnight(t *testing.T) {
	treatment := fixtureTreatment(45, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor}, nil)

	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "23:30",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, bookings.created)
}

func TestCreate_TreatmentNotFound(t *testing.T) {
	svc := newTestService(&mockBookingStore{}, &mockTreatmentStore{}, &mockDoctorStore{}, nil)

	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  uuid.New(),
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "11:00",
	})
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestCreate_DoctorNotFound(t *testing.T) {
	treatment := fixtureTreatment(30, 100)
	missing := uuid.New()
	svc := newTestService(&mockBookingStore{}, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{}, nil)

	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &missing,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "11:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreate_IgnoresCancelledBookings(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "10:00:00", "10:30:00", models.StatusCancelled),
	}}
	svc := newTestService(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor}, nil)

	_, err := svc.Create(context.Background(), BookingInput{
		TreatmentID:  treatment.ID,
		DoctorID:     &doctor.ID,
		SessionCount: 1,
		Date:         "2025-07-01",
		Time:         "10:15",
	})
	assert.NoError(t, err)
}

func TestTransition_LegalAndIllegalMoves(t *testing.T) {
	id := uuid.New()
	bookings := &mockBookingStore{byID: map[uuid.UUID]*models.Booking{
		id: {ID: id, Status: models.StatusPending, BookingDate: "2025-07-01"},
	}}
	svc := newTestService(bookings, &mockTreatmentStore{}, &mockDoctorStore{}, nil)

	booking, err := svc.Transition(context.Background(), id, models.StatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, models.StatusConfirmed, bookings.updated[id])

	// Confirmed bookings cannot go back to pending.
	_, err = svc.Transition(context.Background(), id, models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Terminal states stay terminal.
	bookings.byID[id].Status = models.StatusCancelled
	_, err = svc.Transition(context.Background(), id, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_BookingNotFound(t *testing.T) {
	svc := newTestService(&mockBookingStore{}, &mockTreatmentStore{}, &mockDoctorStore{}, nil)

	_, err := svc.Transition(context.Background(), uuid.New(), models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAssignDoctor_ChecksOverlap(t *testing.T) {
	doctor := fixtureDoctor()
	id := uuid.New()

	bookings := &mockBookingStore{
		byID: map[uuid.UUID]*models.Booking{
			id: {ID: id, Status: models.StatusPending, BookingDate: "2025-07-01",
				BookingTime: "10:00:00", BookingEndTime: "10:30:00"},
		},
		active: []models.Booking{
			existingBooking(doctor.ID, "2025-07-01", "10:15:00", "10:45:00", models.StatusConfirmed),
		},
	}
	svc := newTestService(bookings, &mockTreatmentStore{}, &mockDoctorStore{doctor: doctor}, nil)

	_, err := svc.AssignDoctor(context.Background(), id, doctor.ID)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Free calendar assigns cleanly.
	bookings.active = nil
	booking, err := svc.AssignDoctor(context.Background(), id, doctor.ID)
	assert.NoError(t, err)
	assert.Equal(t, doctor.ID, *booking.DoctorID)
}
