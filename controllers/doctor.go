// controllers/doctor.go
package controllers

import (
	"errors"
	"net/http"

	"clinicbook-backend/config"
	"clinicbook-backend/models"
	"clinicbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDoctorInput defines the expected JSON structure for creating a doctor
type CreateDoctorInput struct {
	Name      string            `json:"name" binding:"required"`
	Specialty string            `json:"specialty"`
	Phone     string            `json:"phone"`
	Locations models.StringList `json:"locations"`
}

// UpdateDoctorInput defines the expected JSON structure for updating a doctor
type UpdateDoctorInput struct {
	Name      *string            `json:"name"`
	Specialty *string            `json:"specialty"`
	Phone     *string            `json:"phone"`
	Locations *models.StringList `json:"locations"`
	IsActive  *bool              `json:"isActive"`
}

// CreateDoctor registers a new doctor
func CreateDoctor(c *gin.Context) {
	var input CreateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	doctor := models.Doctor{
		Name:      input.Name,
		Specialty: input.Specialty,
		Phone:     input.Phone,
		Locations: input.Locations,
		IsActive:  true,
	}

	if err := config.DB.Create(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create doctor")
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// GetDoctors retrieves all doctors, optionally only active ones
func GetDoctors(c *gin.Context) {
	query := config.DB.Order("name ASC")
	if c.Query("active") == "true" {
		query = query.Where("is_active = true")
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve doctors")
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// GetDoctor retrieves a specific doctor by ID
func GetDoctor(c *gin.Context) {
	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var doctor models.Doctor
	if err := config.DB.First(&doctor, "id = ?", doctorUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// UpdateDoctor updates an existing doctor
func UpdateDoctor(c *gin.Context) {
	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	var input UpdateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var doctor models.Doctor
	if err := config.DB.First(&doctor, "id = ?", doctorUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Specialty != nil {
		doctor.Specialty = *input.Specialty
	}
	if input.Phone != nil {
		doctor.Phone = *input.Phone
	}
	if input.Locations != nil {
		doctor.Locations = *input.Locations
	}
	if input.IsActive != nil {
		doctor.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&doctor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update doctor")
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor soft deletes a doctor
func DeleteDoctor(c *gin.Context) {
	doctorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid doctor ID format")
		return
	}

	result := config.DB.Delete(&models.Doctor{}, "id = ?", doctorUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete doctor")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Doctor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}
