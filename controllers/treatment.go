// controllers/treatment.go
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

// CreateTreatmentInput defines the expected JSON structure for creating a treatment
type CreateTreatmentInput struct {
	CategoryID      *uuid.UUID     `json:"categoryId"`
	Name            string         `json:"name" binding:"required"`
	Description     string         `json:"description"`
	BasePrice       float64        `json:"basePrice" binding:"required,min=0"`
	DurationMinutes int            `json:"durationMinutes" binding:"required,min=5"`
	SessionOptions  models.IntList `json:"sessionOptions"`
}

// UpdateTreatmentInput defines the expected JSON structure for updating a treatment
type UpdateTreatmentInput struct {
	CategoryID      *uuid.UUID      `json:"categoryId"`
	Name            *string         `json:"name"`
	Description     *string         `json:"description"`
	BasePrice       *float64        `json:"basePrice"`
	DurationMinutes *int            `json:"durationMinutes"`
	SessionOptions  *models.IntList `json:"sessionOptions"`
	IsActive        *bool           `json:"isActive"`
}

// CreateTreatment creates a new treatment in the catalog
func CreateTreatment(c *gin.Context) {
	var input CreateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
			return
		}
	}

	sessionOptions := input.SessionOptions
	if len(sessionOptions) == 0 {
		sessionOptions = models.IntList{1, 3, 6, 10}
	}

	treatment := models.Treatment{
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		Description:     input.Description,
		BasePrice:       input.BasePrice,
		DurationMinutes: input.DurationMinutes,
		SessionOptions:  sessionOptions,
		IsActive:        true,
	}

	if err := config.DB.Create(&treatment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create treatment")
		return
	}

	invalidateCatalogCache(c)
	c.JSON(http.StatusCreated, treatment)
}

// GetTreatments retrieves all treatments, optionally filtered by category
func GetTreatments(c *gin.Context) {
	query := config.DB.Preload("Category")
	if categoryID := c.Query("categoryId"); categoryID != "" {
		categoryUUID, err := uuid.Parse(categoryID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
			return
		}
		query = query.Where("category_id = ?", categoryUUID)
	}

	var treatments []models.Treatment
	if err := query.Order("name ASC").Find(&treatments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve treatments")
		return
	}

	c.JSON(http.StatusOK, treatments)
}

// GetPublicTreatments retrieves the active catalog for the customer-facing
// browse flow, served from cache when possible.
func GetPublicTreatments(c *gin.Context) {
	var treatments []models.Treatment

	if config.Cache != nil {
		hit, err := config.Cache.GetJSON(c.Request.Context(), config.TreatmentListKey(), &treatments)
		if err == nil && hit {
			c.JSON(http.StatusOK, treatments)
			return
		}
	}

	if err := config.DB.Preload("Category").
		Where("is_active = true").Order("name ASC").
		Find(&treatments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve treatments")
		return
	}

	if config.Cache != nil {
		config.Cache.SetJSON(c.Request.Context(), config.TreatmentListKey(), treatments, 0)
	}

	c.JSON(http.StatusOK, treatments)
}

// GetTreatment retrieves a specific treatment by ID
func GetTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var treatment models.Treatment
	if err := config.DB.Preload("Category").First(&treatment, "id = ?", treatmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, treatment)
}

// UpdateTreatment updates an existing treatment
func UpdateTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var input UpdateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var treatment models.Treatment
	if err := config.DB.First(&treatment, "id = ?", treatmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CategoryID != nil {
		treatment.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		treatment.Name = *input.Name
	}
	if input.Description != nil {
		treatment.Description = *input.Description
	}
	if input.BasePrice != nil {
		treatment.BasePrice = *input.BasePrice
	}
	if input.DurationMinutes != nil {
		treatment.DurationMinutes = *input.DurationMinutes
	}
	if input.SessionOptions != nil {
		treatment.SessionOptions = *input.SessionOptions
	}
	if input.IsActive != nil {
		treatment.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&treatment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update treatment")
		return
	}

	invalidateCatalogCache(c)
	c.JSON(http.StatusOK, treatment)
}

// DeleteTreatment soft deletes a treatment
func DeleteTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	result := config.DB.Delete(&models.Treatment{}, "id = ?", treatmentUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete treatment")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		return
	}

	invalidateCatalogCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Treatment deleted successfully"})
}
