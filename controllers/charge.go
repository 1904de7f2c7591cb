package controllers

import (
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChargeInput defines the expected JSON structure for an expense entry
type ChargeInput struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required"`
}

func CreateCharge(c *gin.Context) {
	var input ChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	charge := models.Charge{
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
	}

	if err := config.DB.Create(&charge).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create charge")
		return
	}

	c.JSON(http.StatusCreated, charge)
}

func GetCharges(c *gin.Context) {
	query := config.DB.Model(&models.Charge{})
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var charges []models.Charge
	if err := query.Order("date DESC").Find(&charges).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve charges")
		return
	}

	c.JSON(http.StatusOK, charges)
}

func DeleteCharge(c *gin.Context) {
	chargeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid charge ID format")
		return
	}

	result := config.DB.Where("id = ?", chargeUUID).Delete(&models.Charge{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete charge")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Charge not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Charge deleted successfully"})
}

type ExpenseCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateExpenseCategory(c *gin.Context) {
	var input ExpenseCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := models.ExpenseCategory{Name: input.Name}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Expense category already exists")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func GetExpenseCategories(c *gin.Context) {
	var categories []models.ExpenseCategory
	if err := config.DB.Order("name").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expense categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func DeleteExpenseCategory(c *gin.Context) {
	categoryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	result := config.DB.Where("id = ?", categoryUUID).Delete(&models.ExpenseCategory{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense category")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense category deleted successfully"})
}
