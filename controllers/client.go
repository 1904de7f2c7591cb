package controllers

import (
	"errors"
	"net/http"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name         string     `json:"name" binding:"required"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email" binding:"omitempty,email"`
	Birthday     *time.Time `json:"birthday"`
	Notes        string     `json:"notes"`
	ReferredByID *uuid.UUID `json:"referredById"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name         *string    `json:"name"`
	Phone        *string    `json:"phone"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	Birthday     *time.Time `json:"birthday"`
	Notes        *string    `json:"notes"`
	ReferredByID *uuid.UUID `json:"referredById"`
}

// RedeemInput defines the expected JSON structure for a loyalty redemption
type RedeemInput struct {
	Points int    `json:"points" binding:"required,min=1"`
	Reward string `json:"reward"`
}

func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Birthday:     input.Birthday,
		Notes:        input.Notes,
		ReferredByID: input.ReferredByID,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Order("name").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

func UpdateClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Birthday != nil {
		client.Birthday = input.Birthday
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.ReferredByID != nil {
		client.ReferredByID = input.ReferredByID
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

func DeleteClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("id = ?", clientUUID).Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// RedeemLoyaltyPoints subtracts points from a client's balance. The
// conditional update guarantees the balance never goes negative: redeeming
// more than the current balance fails without mutating the record.
func RedeemLoyaltyPoints(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input RedeemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	redemption := models.LoyaltyRedemption{
		ClientID: clientUUID,
		Points:   input.Points,
		Reward:   input.Reward,
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Client{}).
			Where("id = ? AND loyalty_points >= ?", clientUUID, input.Points).
			UpdateColumn("loyalty_points", gorm.Expr("loyalty_points - ?", input.Points))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errInsufficientPoints
		}
		return tx.Create(&redemption).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errInsufficientPoints) {
			utils.RespondWithError(c, http.StatusBadRequest, "Insufficient loyalty points")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to redeem points")
		}
		return
	}

	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"client": client, "redemption": redemption})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemption": redemption})
}

var errInsufficientPoints = errors.New("insufficient loyalty points")

// GetLoyaltyRedemptions lists redemptions, optionally for one client.
func GetLoyaltyRedemptions(c *gin.Context) {
	query := config.DB.Model(&models.LoyaltyRedemption{})
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var redemptions []models.LoyaltyRedemption
	if err := query.Order("created_at DESC").Find(&redemptions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve redemptions")
		return
	}

	c.JSON(http.StatusOK, redemptions)
}
