// controllers/payroll.go
package controllers

import (
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/services"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetPayrollReport aggregates paid appointments, expenses and deductions
// for an inclusive calendar-day range into a salon/staff split.
func GetPayrollReport(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	staffFilter := c.Query("staff")

	if from != "" && !utils.ValidateDate(from) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if to != "" && !utils.ValidateDate(to) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	appointmentQuery := config.DB.Where("paid = ?", true)
	chargeQuery := config.DB.Model(&models.Charge{})
	deductionQuery := config.DB.Model(&models.StaffDeduction{})
	if from != "" {
		appointmentQuery = appointmentQuery.Where("date >= ?", from)
		chargeQuery = chargeQuery.Where("date >= ?", from)
		deductionQuery = deductionQuery.Where("date >= ?", from)
	}
	if to != "" {
		appointmentQuery = appointmentQuery.Where("date <= ?", to)
		chargeQuery = chargeQuery.Where("date <= ?", to)
		deductionQuery = deductionQuery.Where("date <= ?", to)
	}

	var appointments []models.Appointment
	if err := appointmentQuery.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	var catalog []models.Service
	if err := config.DB.Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	commissionPercents := make(map[string]float64, len(catalog))
	for _, service := range catalog {
		commissionPercents[service.Name] = service.CommissionPercent
	}

	var charges []models.Charge
	if err := chargeQuery.Find(&charges).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve charges")
		return
	}

	var deductions []models.StaffDeduction
	if err := deductionQuery.Find(&deductions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve deductions")
		return
	}

	report := services.BuildPayrollReport(appointments, commissionPercents, charges, deductions, from, to, staffFilter)

	c.JSON(http.StatusOK, report)
}
