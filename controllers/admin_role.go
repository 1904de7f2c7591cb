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

type CreateAdminRoleInput struct {
	Name        string   `json:"name" binding:"required"`
	Role        string   `json:"role" binding:"required,oneof=owner manager receptionist"`
	PIN         string   `json:"pin" binding:"required,min=4"`
	Permissions []string `json:"permissions"`
}

type UpdateAdminRoleInput struct {
	Name        *string   `json:"name"`
	Role        *string   `json:"role" binding:"omitempty,oneof=owner manager receptionist"`
	PIN         *string   `json:"pin" binding:"omitempty,min=4"`
	Permissions *[]string `json:"permissions"`
}

type VerifyPINInput struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

func CreateAdminRole(c *gin.Context) {
	var input CreateAdminRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	hashed, err := utils.HashPIN(input.PIN)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash PIN")
		return
	}

	role := models.AdminRole{
		Name:        input.Name,
		Role:        input.Role,
		PIN:         hashed,
		Permissions: models.StringList(input.Permissions),
	}
	if role.Permissions == nil {
		role.Permissions = models.StringList{}
	}

	if err := config.DB.Create(&role).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Role with this name already exists")
		return
	}

	c.JSON(http.StatusCreated, role)
}

func GetAdminRoles(c *gin.Context) {
	var roles []models.AdminRole
	if err := config.DB.Order("name").Find(&roles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve roles")
		return
	}

	c.JSON(http.StatusOK, roles)
}

func UpdateAdminRole(c *gin.Context) {
	roleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	var input UpdateAdminRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var role models.AdminRole
	if err := config.DB.Where("id = ?", roleUUID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Role not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		role.Name = *input.Name
	}
	if input.Role != nil {
		role.Role = *input.Role
	}
	if input.PIN != nil {
		hashed, err := utils.HashPIN(*input.PIN)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash PIN")
			return
		}
		role.PIN = hashed
	}
	if input.Permissions != nil {
		role.Permissions = models.StringList(*input.Permissions)
	}

	if err := config.DB.Save(&role).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, role)
}

func DeleteAdminRole(c *gin.Context) {
	roleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role ID format")
		return
	}

	result := config.DB.Where("id = ?", roleUUID).Delete(&models.AdminRole{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete role")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Role not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}

// VerifyPIN authenticates a role by name and PIN and sets the session
// cookie. Attempts are counted per (address, name); once the budget is
// spent the pair is locked out and told how long to wait.
func VerifyPIN(c *gin.Context) {
	var input VerifyPINInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	key := c.ClientIP() + "|" + input.Name
	if decision := Lockout.Check(key); !decision.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":          "Too many failed attempts",
			"lockoutSeconds": decision.RetryAfter,
		})
		return
	}

	var role models.AdminRole
	if err := config.DB.Where("name = ?", input.Name).First(&role).Error; err != nil {
		Lockout.Record(key)
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid name or PIN")
		return
	}

	if !utils.CheckPINHash(input.PIN, role.PIN) {
		Lockout.Record(key)
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid name or PIN")
		return
	}

	Lockout.Clear(key)

	token, err := utils.GenerateSessionToken(&role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}
	utils.SetSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"name":        role.Name,
		"role":        role.Role,
		"permissions": role.Permissions,
	})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated session's identity.
func Me(c *gin.Context) {
	name, _ := c.Get("roleName")
	role, _ := c.Get("role")
	permissions, _ := c.Get("permissions")
	c.JSON(http.StatusOK, gin.H{
		"name":        name,
		"role":        role,
		"permissions": permissions,
	})
}
