// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/services"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name                    string     `json:"name" binding:"required"`
	Price                   float64    `json:"price" binding:"required,min=0"`
	Duration                int        `json:"duration" binding:"min=0"` // in minutes
	Category                string     `json:"category"`
	LinkedProductID         *uuid.UUID `json:"linkedProductId"`
	CommissionPercent       *float64   `json:"commissionPercent" binding:"omitempty,min=0,max=100"`
	LoyaltyPointsMultiplier *float64   `json:"loyaltyPointsMultiplier" binding:"omitempty,min=0"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name                    *string    `json:"name"`
	Price                   *float64   `json:"price" binding:"omitempty,min=0"`
	Duration                *int       `json:"duration" binding:"omitempty,min=0"`
	Category                *string    `json:"category"`
	LinkedProductID         *uuid.UUID `json:"linkedProductId"`
	CommissionPercent       *float64   `json:"commissionPercent" binding:"omitempty,min=0,max=100"`
	LoyaltyPointsMultiplier *float64   `json:"loyaltyPointsMultiplier" binding:"omitempty,min=0"`
}

// CreateService creates a new service
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		Name:                    input.Name,
		Price:                   input.Price,
		Duration:                input.Duration,
		Category:                input.Category,
		LinkedProductID:         input.LinkedProductID,
		CommissionPercent:       services.DefaultCommissionPercent,
		LoyaltyPointsMultiplier: 1,
	}
	if input.CommissionPercent != nil {
		service.CommissionPercent = *input.CommissionPercent
	}
	if input.LoyaltyPointsMultiplier != nil {
		service.LoyaltyPointsMultiplier = *input.LoyaltyPointsMultiplier
	}
	if service.Duration == 0 {
		service.Duration = 30
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services
func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Order("name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ?", serviceUUID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.LinkedProductID != nil {
		service.LinkedProductID = input.LinkedProductID
	}
	if input.CommissionPercent != nil {
		service.CommissionPercent = *input.CommissionPercent
	}
	if input.LoyaltyPointsMultiplier != nil {
		service.LoyaltyPointsMultiplier = *input.LoyaltyPointsMultiplier
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service
func DeleteService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("id = ?", serviceUUID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
