// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"clinicbook-backend/config"
	"clinicbook-backend/models"
	"clinicbook-backend/services"
	"clinicbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePublicBookingInput is the customer-facing confirm flow payload. The
// session package may arrive as a bare count or a label like "3 sessions".
type CreatePublicBookingInput struct {
	TreatmentID   uuid.UUID  `json:"treatmentId" binding:"required"`
	DoctorID      *uuid.UUID `json:"doctorId"`
	SessionCount  int        `json:"sessionCount"`
	Package       string     `json:"package"`
	Date          string     `json:"date" binding:"required"`
	Time          string     `json:"time" binding:"required"`
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerPhone string     `json:"customerPhone" binding:"required"`
	Notes         string     `json:"notes"`
}

// CreateBookingInput is the admin creation form payload. Unit price and
// discount may be entered manually; omitted values are derived.
type CreateBookingInput struct {
	TreatmentID     uuid.UUID  `json:"treatmentId" binding:"required"`
	DoctorID        *uuid.UUID `json:"doctorId"`
	CustomerID      *uuid.UUID `json:"customerId"`
	SessionCount    int        `json:"sessionCount" binding:"required,min=1"`
	Date            string     `json:"date" binding:"required"`
	Time            string     `json:"time" binding:"required"`
	UnitPrice       *float64   `json:"unitPrice" binding:"omitempty,min=0"`
	DiscountPercent *int       `json:"discountPercent" binding:"omitempty,min=0,max=100"`
	Status          string     `json:"status" binding:"omitempty,oneof=pending confirmed"`
	Notes           string     `json:"notes"`
}

// UpdateBookingStatusInput carries a lifecycle transition request
type UpdateBookingStatusInput struct {
	Status models.BookingStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// UpdateBookingInput allows editing notes and assigning a doctor after the fact
type UpdateBookingInput struct {
	DoctorID *uuid.UUID `json:"doctorId"`
	Notes    *string    `json:"notes"`
}

func bookingService() *services.BookingService {
	return services.NewBookingService(config.DB)
}

// CreatePublicBooking handles the customer-facing confirm flow
func CreatePublicBooking(c *gin.Context) {
	var input CreatePublicBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	sessionCount := input.SessionCount
	if sessionCount == 0 && input.Package != "" {
		n, err := utils.ParseSessionCount(input.Package)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid session package: "+input.Package)
			return
		}
		sessionCount = n
	}
	if sessionCount < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Session count is required")
		return
	}

	customer, err := services.NewCustomerStore(config.DB).
		FindOrCreateByPhone(c.Request.Context(), input.CustomerName, input.CustomerPhone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve customer")
		return
	}

	booking, err := bookingService().Create(c.Request.Context(), services.BookingInput{
		TreatmentID:  input.TreatmentID,
		DoctorID:     input.DoctorID,
		CustomerID:   &customer.ID,
		SessionCount: sessionCount,
		Date:         input.Date,
		Time:         input.Time,
		Status:       models.StatusPending,
		Source:       "web",
		Notes:        input.Notes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	invalidateBookingCache(c, booking.BookingDate)
	c.JSON(http.StatusCreated, booking)
}

// CreateBooking handles the admin creation form
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := models.BookingStatus(input.Status)
	if input.Status == "" {
		status = models.StatusPending
	}

	booking, err := bookingService().Create(c.Request.Context(), services.BookingInput{
		TreatmentID:     input.TreatmentID,
		DoctorID:        input.DoctorID,
		CustomerID:      input.CustomerID,
		SessionCount:    input.SessionCount,
		Date:            input.Date,
		Time:            input.Time,
		UnitPrice:       input.UnitPrice,
		DiscountPercent: input.DiscountPercent,
		Status:          status,
		Source:          "admin",
		Notes:           input.Notes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	invalidateBookingCache(c, booking.BookingDate)
	c.JSON(http.StatusCreated, booking)
}

// GetBookings retrieves bookings with date/doctor/status/search filters
func GetBookings(c *gin.Context) {
	query := config.DB.Preload("Customer").Preload("Doctor").Preload("Treatment").
		Order("booking_date DESC, booking_time ASC")

	if date := c.Query("date"); date != "" {
		canonical, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date filter")
			return
		}
		query = query.Where("booking_date = ?", canonical)
	}
	if doctorID := c.Query("doctorId"); doctorID != "" {
		doctorUUID, err := uuid.Parse(doctorID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
			return
		}
		query = query.Where("doctor_id = ?", doctorUUID)
	}
	if status := c.Query("status"); status != "" {
		if !models.BookingStatus(status).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if q := c.Query("q"); q != "" {
		query = query.Joins("JOIN customers ON customers.id = bookings.customer_id").
			Where("customers.name ILIKE ? OR customers.phone LIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Customer").Preload("Doctor").Preload("Treatment").
		First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus applies a lifecycle transition (confirm, cancel, complete)
func UpdateBookingStatus(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bookingService().Transition(c.Request.Context(), bookingUUID, input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	invalidateBookingCache(c, booking.BookingDate)
	c.JSON(http.StatusOK, booking)
}

// CancelPublicBooking lets a customer cancel their own pending booking
func CancelPublicBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, err := bookingService().Transition(c.Request.Context(), bookingUUID, models.StatusCancelled)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	invalidateBookingCache(c, booking.BookingDate)
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking edits notes or assigns a doctor to an existing booking
func UpdateBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := bookingService()
	var booking *models.Booking

	if input.DoctorID != nil {
		booking, err = svc.AssignDoctor(c.Request.Context(), bookingUUID, *input.DoctorID)
		if err != nil {
			respondBookingError(c, err)
			return
		}
	} else {
		booking, err = svc.Get(c.Request.Context(), bookingUUID)
		if err != nil {
			respondBookingError(c, err)
			return
		}
	}

	if input.Notes != nil {
		if err := config.DB.Model(&models.Booking{}).
			Where("id = ?", bookingUUID).
			Update("notes", *input.Notes).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
			return
		}
		booking.Notes = *input.Notes
	}

	invalidateBookingCache(c, booking.BookingDate)
	c.JSON(http.StatusOK, booking)
}

// respondBookingError maps core errors onto the HTTP taxonomy: bad input is
// 400, missing references 404, a calendar clash 409, everything else 500.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTreatmentNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSlotConflict):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// invalidateBookingCache drops the cached dashboard for the affected date
// after any booking mutation. Today's entry also aggregates monthly revenue
// and pending counts, so it is dropped even when the booking is dated on
// another day.
func invalidateBookingCache(c *gin.Context, date string) {
	if config.Cache == nil {
		return
	}
	config.Cache.Invalidate(c.Request.Context(),
		config.DashboardKey(date),
		config.DashboardKey(utils.DateOf(time.Now())))
}
