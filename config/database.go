package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}

// EnsureBookingSlotIndex creates the partial unique index that backstops the
// application-level overlap check: two active bookings can never share the
// exact same doctor/date/start even if concurrent requests race past the
// read-then-insert guard.
func EnsureBookingSlotIndex() error {
	return DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_active_booking_slot
		ON bookings (doctor_id, booking_date, booking_time)
		WHERE status IN ('pending', 'confirmed') AND doctor_id IS NOT NULL AND deleted_at IS NULL
	`).Error
}
