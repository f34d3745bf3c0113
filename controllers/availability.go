// controllers/availability.go
package controllers

import (
	"net/http"

	"clinicbook-backend/config"
	"clinicbook-backend/services"
	"clinicbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAvailability returns the free start times for a doctor on a date, sized
// for the requested treatment. Advisory only: the booking service re-checks
// at insert time, so the client must handle a 409 on submit.
func GetAvailability(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	treatmentID := c.Query("treatmentId")

	if doctorID == "" || date == "" || treatmentID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "doctorId, date and treatmentId are required")
		return
	}

	doctorUUID, err := uuid.Parse(doctorID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}
	treatmentUUID, err := uuid.Parse(treatmentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	slots, err := services.NewAvailabilityService(config.DB).
		AvailableSlots(c.Request.Context(), doctorUUID, date, treatmentUUID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctorId": doctorUUID,
		"date":     date,
		"slots":    slots,
	})
}
