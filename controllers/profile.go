package controllers

import (
	"net/http"

	"clinicbook-backend/config"
	"clinicbook-backend/models"
	"clinicbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateClinicProfileInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// loadClinic returns the single clinic profile row, creating it on first use.
func loadClinic() (*models.Clinic, error) {
	var clinic models.Clinic
	err := config.DB.First(&clinic).Error
	if err == nil {
		return &clinic, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	clinic = models.Clinic{ID: uuid.New(), Name: "Clinic"}
	if err := config.DB.Create(&clinic).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func GetClinicProfile(c *gin.Context) {
	clinic, err := loadClinic()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                  clinic.Name,
		"address":               clinic.Address,
		"phone":                 clinic.Phone,
		"workingHours":          clinic.WorkingHours,
		"bookingReminders":      clinic.BookingReminders,
		"whatsAppNotifications": clinic.WhatsAppNotifications,
		"smsNotifications":      clinic.SMSNotifications,
	})
}

func UpdateClinicProfile(c *gin.Context) {
	var input UpdateClinicProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	clinic, err := loadClinic()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Update fields
	clinic.Name = input.Name
	clinic.Address = input.Address
	clinic.Phone = input.Phone

	if err := config.DB.Save(clinic).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateWorkingHours(c *gin.Context) {
	var input struct {
		WorkingHours models.JSONB `json:"workingHours"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	clinic, err := loadClinic()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Model(clinic).
		Update("working_hours", input.WorkingHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	var input struct {
		BookingReminders      *bool `json:"bookingReminders"`
		WhatsAppNotifications *bool `json:"whatsAppNotifications"`
		SMSNotifications      *bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	clinic, err := loadClinic()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	updates := map[string]interface{}{}
	if input.BookingReminders != nil {
		updates["booking_reminders"] = *input.BookingReminders
	}
	if input.WhatsAppNotifications != nil {
		updates["whats_app_notifications"] = *input.WhatsAppNotifications
	}
	if input.SMSNotifications != nil {
		updates["sms_notifications"] = *input.SMSNotifications
	}

	if len(updates) > 0 {
		if err := config.DB.Model(clinic).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
