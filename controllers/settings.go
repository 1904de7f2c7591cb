package controllers

import (
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSettingsInput struct {
	SalonName   *string   `json:"salonName"`
	Currency    *string   `json:"currency"`
	OpeningTime *string   `json:"openingTime"`
	ClosingTime *string   `json:"closingTime"`
	WorkingDays *[]string `json:"workingDays"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Address     *string   `json:"address"`
}

// GetBusinessSettings returns the singleton settings row, creating it with
// defaults on first read.
func GetBusinessSettings(c *gin.Context) {
	var settings models.BusinessSettings
	if err := config.DB.First(&settings).Error; err != nil {
		settings = models.BusinessSettings{
			SalonName:   "My Salon",
			Currency:    "USD",
			OpeningTime: "09:00",
			ClosingTime: "19:00",
			WorkingDays: models.StringList{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
		}
		if err := config.DB.Create(&settings).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to initialize settings")
			return
		}
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateBusinessSettings mutates the singleton row. This is the only write
// path for settings.
func UpdateBusinessSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var settings models.BusinessSettings
	if err := config.DB.First(&settings).Error; err != nil {
		settings = models.BusinessSettings{}
		if err := config.DB.Create(&settings).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to initialize settings")
			return
		}
	}

	if input.SalonName != nil {
		settings.SalonName = *input.SalonName
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.OpeningTime != nil {
		if !utils.ValidateClockTime(*input.OpeningTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid opening time format, expected HH:MM")
			return
		}
		settings.OpeningTime = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		if !utils.ValidateClockTime(*input.ClosingTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid closing time format, expected HH:MM")
			return
		}
		settings.ClosingTime = *input.ClosingTime
	}
	if input.WorkingDays != nil {
		settings.WorkingDays = models.StringList(*input.WorkingDays)
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
