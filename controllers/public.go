// controllers/public.go
package controllers

import (
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// The public booking surface exposes only booking-safe fields: never client
// names of other bookings, never prices of other bookings, never internal
// ids beyond what the booking form needs.

type publicService struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
	Category string  `json:"category"`
}

type publicStaff struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type publicAppointment struct {
	StaffName string `json:"staffName"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
}

// GetPublicServices lists the bookable service catalog.
func GetPublicServices(c *gin.Context) {
	var catalog []models.Service
	if err := config.DB.Order("name").Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	out := make([]publicService, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, publicService{Name: s.Name, Price: s.Price, Duration: s.Duration, Category: s.Category})
	}
	c.JSON(http.StatusOK, out)
}

// GetPublicStaff lists bookable staff members.
func GetPublicStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Order("name").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	out := make([]publicStaff, 0, len(staff))
	for _, s := range staff {
		out = append(out, publicStaff{Name: s.Name, Color: s.Color})
	}
	c.JSON(http.StatusOK, out)
}

// GetPublicAppointments returns the day's bookings stripped to what the
// booking page needs for conflict display: staff, start time and duration.
func GetPublicAppointments(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.Today()
	} else if !utils.ValidateDate(date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Where("date = ?", date).
		Order("start_time").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	out := make([]publicAppointment, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, publicAppointment{StaffName: a.StaffName, StartTime: a.StartTime, Duration: a.Duration})
	}
	c.JSON(http.StatusOK, out)
}

// GetPublicAvailability exposes the slot checker to the booking page.
func GetPublicAvailability(c *gin.Context) {
	GetAvailability(c)
}

// CreatePublicAppointment books through the unauthenticated channel. The
// stored appointment is never paid regardless of the submitted payload.
func CreatePublicAppointment(c *gin.Context) {
	createAppointment(c, true)
}
