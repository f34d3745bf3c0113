package services

import (
	"context"
	"testing"

	"clinicbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestAvailability(b *mockBookingStore, t *mockTreatmentStore, d *mockDoctorStore) *AvailabilityService {
	return NewAvailabilityServiceWithStores(b, t, d)
}

func TestAvailableSlots_ExcludesBlockedStarts(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "10:00:00", "10:30:00", models.StatusConfirmed),
	}}
	svc := newTestAvailability(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor})

	slots, err := svc.AvailableSlots(context.Background(), doctor.ID, "2025-07-01", treatment.ID)
	assert.NoError(t, err)

	// A 30-minute slot starting at 09:45, 10:00 or 10:15 would run into the
	// 10:00-10:30 appointment; 10:30 starts exactly when it ends.
	assert.NotContains(t, slots, "09:45:00")
	assert.NotContains(t, slots, "10:00:00")
	assert.NotContains(t, slots, "10:15:00")
	assert.Contains(t, slots, "09:30:00")
	assert.Contains(t, slots, "10:30:00")
}

func TestAvailableSlots_EmptyCalendar(t *testing.T) {
	treatment := fixtureTreatment(60, 150)
	doctor := fixtureDoctor()

	svc := newTestAvailability(&mockBookingStore{}, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor})

	slots, err := svc.AvailableSlots(context.Background(), doctor.ID, "2025-07-01", treatment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "09:00:00", slots[0])
	assert.Equal(t, "17:00:00", slots[len(slots)-1])
}

func TestAvailableSlots_NormalizesNaturalDates(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-06-03", "09:00:00", "18:00:00", models.StatusConfirmed),
	}}
	svc := newTestAvailability(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor})

	// "Tuesday 3rd June 2025" resolves to 2025-06-03, which is fully booked.
	slots, err := svc.AvailableSlots(context.Background(), doctor.ID, "Tuesday 3rd June 2025", treatment.ID)
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_ReadOnlyAndRepeatable(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	bookings := &mockBookingStore{active: []models.Booking{
		existingBooking(doctor.ID, "2025-07-01", "14:00:00", "14:30:00", models.StatusPending),
	}}
	svc := newTestAvailability(bookings, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor})

	first, err := svc.AvailableSlots(context.Background(), doctor.ID, "2025-07-01", treatment.ID)
	assert.NoError(t, err)
	second, err := svc.AvailableSlots(context.Background(), doctor.ID, "2025-07-01", treatment.ID)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Nil(t, bookings.created, "availability must not write")
}

func TestAvailableSlots_UnknownTreatmentAndDoctor(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	svc := newTestAvailability(&mockBookingStore{}, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor})

	_, err := svc.AvailableSlots(context.Background(), doctor.ID, "2025-07-01", uuid.New())
	assert.ErrorIs(t, err, ErrTreatmentNotFound)

	_, err = svc.AvailableSlots(context.Background(), uuid.New(), "2025-07-01", treatment.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAvailableSlots_BadDate(t *testing.T) {
	treatment := fixtureTreatment(30, 80)
	doctor := fixtureDoctor()

	svc := newTestAvailability(&mockBookingStore{}, &mockTreatmentStore{treatment: treatment}, &mockDoctorStore{doctor: doctor})

	_, err := svc.AvailableSlots(context.Background(), doctor.ID, "not a date", treatment.ID)
	assert.ErrorIs(t, err, ErrValidation)
}
