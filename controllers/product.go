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

type CreateProductInput struct {
	Name              string `json:"name" binding:"required"`
	Quantity          int    `json:"quantity" binding:"min=0"`
	LowStockThreshold *int   `json:"lowStockThreshold" binding:"omitempty,min=0"`
}

type UpdateProductInput struct {
	Name              *string `json:"name"`
	Quantity          *int    `json:"quantity" binding:"omitempty,min=0"`
	LowStockThreshold *int    `json:"lowStockThreshold" binding:"omitempty,min=0"`
}

// AdjustProductInput is a signed manual inventory adjustment.
type AdjustProductInput struct {
	Delta int `json:"delta" binding:"required"`
}

func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := models.Product{
		Name:              input.Name,
		Quantity:          input.Quantity,
		LowStockThreshold: 5,
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Product with this name already exists")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func GetProducts(c *gin.Context) {
	query := config.DB.Model(&models.Product{})
	if c.Query("lowStock") == "true" {
		query = query.Where("quantity <= low_stock_threshold")
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

func UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productUUID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// AdjustProduct applies a signed stock delta. Stock never goes below zero;
// an adjustment that would is rejected without mutation.
func AdjustProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input AdjustProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Product{}).
		Where("id = ? AND quantity + ? >= 0", productUUID, input.Delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", input.Delta))
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to adjust product")
		return
	}
	if result.RowsAffected == 0 {
		var product models.Product
		if err := config.DB.Where("id = ?", productUUID).First(&product).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
			return
		}
		utils.RespondWithError(c, http.StatusBadRequest, "Adjustment would make stock negative")
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productUUID).First(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	result := config.DB.Where("id = ?", productUUID).Delete(&models.Product{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
