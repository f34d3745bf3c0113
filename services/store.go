// services/store.go
package services

import (
	"context"

	"clinicbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage interfaces consumed by the booking core. Handlers get the gorm
// implementations; tests inject mocks.

type BookingStore interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ActiveByDoctorAndDate(ctx context.Context, tx *gorm.DB, doctorID uuid.UUID, date string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error
	UpdateDoctor(ctx context.Context, tx *gorm.DB, id uuid.UUID, doctorID uuid.UUID) error
	// InTransaction runs fn inside a database transaction; the tx handed to
	// fn must be passed on to the store methods called within.
	InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type TreatmentStore interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error)
}

type DoctorStore interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	// FindByIDForUpdate acquires a row-level lock on the doctor within the
	// given transaction, serializing concurrent booking attempts for the
	// same calendar.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Doctor, error)
}

type CustomerStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindOrCreateByPhone(ctx context.Context, name, phone string) (*models.Customer, error)
}

type gormBookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) BookingStore {
	return &gormBookingStore{db: db}
}

func (s *gormBookingStore) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *gormBookingStore) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (s *gormBookingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *gormBookingStore) ActiveByDoctorAndDate(ctx context.Context, tx *gorm.DB, doctorID uuid.UUID, date string) ([]models.Booking, error) {
	if tx == nil {
		tx = s.db
	}
	var bookings []models.Booking
	err := tx.WithContext(ctx).
		Where("doctor_id = ? AND booking_date = ? AND status IN ?",
			doctorID, date, []models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Order("booking_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *gormBookingStore) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error {
	if tx == nil {
		tx = s.db
	}
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *gormBookingStore) UpdateDoctor(ctx context.Context, tx *gorm.DB, id uuid.UUID, doctorID uuid.UUID) error {
	if tx == nil {
		tx = s.db
	}
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("doctor_id", doctorID).Error
}

type gormTreatmentStore struct {
	db *gorm.DB
}

func NewTreatmentStore(db *gorm.DB) TreatmentStore {
	return &gormTreatmentStore{db: db}
}

func (s *gormTreatmentStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var treatment models.Treatment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = true", id).
		First(&treatment).Error
	if err != nil {
		return nil, err
	}
	return &treatment, nil
}

type gormDoctorStore struct {
	db *gorm.DB
}

func NewDoctorStore(db *gorm.DB) DoctorStore {
	return &gormDoctorStore{db: db}
}

func (s *gormDoctorStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = true", id).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *gormDoctorStore) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

type gormCustomerStore struct {
	db *gorm.DB
}

func NewCustomerStore(db *gorm.DB) CustomerStore {
	return &gormCustomerStore{db: db}
}

func (s *gormCustomerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *gormCustomerStore) FindOrCreateByPhone(ctx context.Context, name, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	customer = models.Customer{Name: name, Phone: phone, IsActive: true}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
