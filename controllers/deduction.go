package controllers

import (
	"errors"
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffDeductionInput defines the expected JSON structure for a deduction
type StaffDeductionInput struct {
	StaffID     *uuid.UUID `json:"staffId"`
	StaffName   string     `json:"staffName"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Date        string     `json:"date" binding:"required"`
}

func CreateStaffDeduction(c *gin.Context) {
	var input StaffDeductionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if input.StaffID == nil && input.StaffName == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Staff is required")
		return
	}

	staff, err := resolveStaff(config.DB, input.StaffID, input.StaffName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	deduction := models.StaffDeduction{
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		Type:        input.Type,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
	}

	if err := config.DB.Create(&deduction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create deduction")
		return
	}

	c.JSON(http.StatusCreated, deduction)
}

func GetStaffDeductions(c *gin.Context) {
	query := config.DB.Model(&models.StaffDeduction{})
	if staffID := c.Query("staffId"); staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var deductions []models.StaffDeduction
	if err := query.Order("date DESC").Find(&deductions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve deductions")
		return
	}

	c.JSON(http.StatusOK, deductions)
}

func DeleteStaffDeduction(c *gin.Context) {
	deductionUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deduction ID format")
		return
	}

	result := config.DB.Where("id = ?", deductionUUID).Delete(&models.StaffDeduction{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete deduction")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Deduction not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deduction deleted successfully"})
}
