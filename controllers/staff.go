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

type CreateStaffInput struct {
	Name       string  `json:"name" binding:"required"`
	Color      string  `json:"color"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email" binding:"omitempty,email"`
	BaseSalary float64 `json:"baseSalary" binding:"min=0"`
}

type UpdateStaffInput struct {
	Name       *string  `json:"name"`
	Color      *string  `json:"color"`
	Phone      *string  `json:"phone"`
	Email      *string  `json:"email" binding:"omitempty,email"`
	BaseSalary *float64 `json:"baseSalary" binding:"omitempty,min=0"`
}

func CreateStaff(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	staff := models.Staff{
		Name:       input.Name,
		Color:      input.Color,
		Phone:      input.Phone,
		Email:      input.Email,
		BaseSalary: input.BaseSalary,
	}
	if staff.Color == "" {
		staff.Color = "#cccccc"
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Staff member with this name already exists")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

func GetStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Order("name").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

func UpdateStaff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.Where("id = ?", staffUUID).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	renamed := false
	if input.Name != nil && *input.Name != staff.Name {
		staff.Name = *input.Name
		renamed = true
	}
	if input.Color != nil {
		staff.Color = *input.Color
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		staff.Phone = *input.Phone
	}
	if input.Email != nil {
		staff.Email = *input.Email
	}
	if input.BaseSalary != nil {
		staff.BaseSalary = *input.BaseSalary
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&staff).Error; err != nil {
			return err
		}
		if renamed {
			// The name columns on bookings and deductions are cached
			// projections of this record; keep them in sync.
			if err := tx.Model(&models.Appointment{}).
				Where("staff_id = ?", staff.ID).
				UpdateColumn("staff_name", staff.Name).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.StaffDeduction{}).
				Where("staff_id = ?", staff.ID).
				UpdateColumn("staff_name", staff.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	c.JSON(http.StatusOK, staff)
}

func DeleteStaff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	result := config.DB.Where("id = ?", staffUUID).Delete(&models.Staff{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
