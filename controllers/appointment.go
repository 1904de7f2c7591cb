package controllers

import (
	"errors"
	"math"
	"net/http"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/realtime"
	"salondesk-backend/services"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	Date        string     `json:"date" binding:"required"`
	StartTime   string     `json:"startTime" binding:"required"`
	Duration    int        `json:"duration" binding:"required,min=1"`
	ClientName  string     `json:"clientName" binding:"required"`
	ClientID    *uuid.UUID `json:"clientId"`
	Phone       string     `json:"phone"`
	ServiceName string     `json:"serviceName" binding:"required"`
	StaffID     *uuid.UUID `json:"staffId"`
	StaffName   string     `json:"staffName"`
	Price       float64    `json:"price" binding:"min=0"`
	Total       float64    `json:"total" binding:"min=0"`
	Paid        bool       `json:"paid"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	Date        *string    `json:"date"`
	StartTime   *string    `json:"startTime"`
	Duration    *int       `json:"duration"`
	ClientName  *string    `json:"clientName"`
	ClientID    *uuid.UUID `json:"clientId"`
	ServiceName *string    `json:"serviceName"`
	StaffID     *uuid.UUID `json:"staffId"`
	Price       *float64   `json:"price"`
	Total       *float64   `json:"total"`
	Paid        *bool      `json:"paid"`
}

// resolveStaff finds the staff member by id or, failing that, by name.
func resolveStaff(db *gorm.DB, id *uuid.UUID, name string) (*models.Staff, error) {
	var staff models.Staff
	if id != nil {
		if err := db.Where("id = ?", *id).First(&staff).Error; err != nil {
			return nil, err
		}
		return &staff, nil
	}
	if err := db.Where("name = ?", name).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// staffDayIntervals loads the booked intervals for one staff/date.
func staffDayIntervals(db *gorm.DB, staffID uuid.UUID, date string, exclude *uuid.UUID) ([]services.SlotInterval, error) {
	query := db.Model(&models.Appointment{}).Where("staff_id = ? AND date = ?", staffID, date)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var existing []models.Appointment
	if err := query.Find(&existing).Error; err != nil {
		return nil, err
	}
	intervals := make([]services.SlotInterval, 0, len(existing))
	for _, a := range existing {
		intervals = append(intervals, services.SlotInterval{StartTime: a.StartTime, Duration: a.Duration})
	}
	return intervals, nil
}

func loadSettings(db *gorm.DB) models.BusinessSettings {
	var settings models.BusinessSettings
	if err := db.First(&settings).Error; err != nil {
		// Defaults until the settings row is created.
		settings.OpeningTime = "09:00"
		settings.ClosingTime = "19:00"
		settings.Currency = "USD"
	}
	return settings
}

// createAppointment stores a booking. forcePublic marks the unauthenticated
// channel: paid is forced to false regardless of client input, and price and
// duration come from the service catalog.
func createAppointment(c *gin.Context, forcePublic bool) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if !utils.ValidateClockTime(input.StartTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time format, expected HH:MM")
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

	price := input.Price
	total := input.Total
	duration := input.Duration
	paid := input.Paid
	if forcePublic {
		// Trust boundary: public bookings are never created paid, and the
		// catalog decides what the service costs and how long it takes.
		paid = false
		var service models.Service
		if err := config.DB.Where("name = ?", input.ServiceName).First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		price = service.Price
		total = service.Price
		if service.Duration > 0 {
			duration = service.Duration
		}
	}
	if total == 0 {
		total = price
	}

	settings := loadSettings(config.DB)

	appointment := models.Appointment{
		Date:        input.Date,
		StartTime:   input.StartTime,
		Duration:    duration,
		ClientName:  input.ClientName,
		ClientID:    input.ClientID,
		ServiceName: input.ServiceName,
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		Price:       price,
		Total:       total,
		Paid:        paid,
	}
	if name, exists := c.Get("roleName"); exists {
		if s, ok := name.(string); ok {
			appointment.CreatedBy = s
		}
	}

	// The conflict re-check runs inside the insert transaction. This
	// narrows the double-booking window for concurrent requests but the
	// store itself enforces no overlap constraint.
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		intervals, err := staffDayIntervals(tx, staff.ID, input.Date, nil)
		if err != nil {
			return err
		}
		if services.Conflicts(settings.OpeningTime, settings.ClosingTime, intervals, input.StartTime, duration) {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errSlotTaken) {
			utils.RespondWithError(c, http.StatusConflict, "This time slot is no longer available")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		}
		return
	}

	broadcast(realtime.EventNewBooking, appointment)
	if Push != nil {
		go Push.Broadcast("New booking",
			appointment.ClientName+" booked "+appointment.ServiceName+" on "+appointment.Date+" at "+appointment.StartTime)
	}

	phone := input.Phone
	if phone == "" {
		phone = utils.ExtractPhone(input.ClientName)
	}
	if phone != "" && Notifier != nil {
		// After the write commits; never blocks or rolls back the response.
		go Notifier.SendBookingConfirmation(phone, input.ClientName, input.ServiceName, input.Date, input.StartTime)
	}

	c.JSON(http.StatusCreated, appointment)
}

var errSlotTaken = errors.New("slot taken")

// CreateAppointment creates a booking through the authenticated dashboard
func CreateAppointment(c *gin.Context) {
	createAppointment(c, false)
}

// GetAppointments lists appointments, optionally filtered by date and staff
func GetAppointments(c *gin.Context) {
	query := config.DB.Model(&models.Appointment{})
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if staffID := c.Query("staffId"); staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Order("date, start_time").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAvailability returns the free half-hour slots for a staff member on a
// date, for a candidate duration.
func GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if !utils.ValidateDate(date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	duration := 30
	if d := c.Query("duration"); d != "" {
		parsed, err := parsePositiveInt(d)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid duration")
			return
		}
		duration = parsed
	}

	var staffID *uuid.UUID
	if raw := c.Query("staffId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
			return
		}
		staffID = &id
	}
	staff, err := resolveStaff(config.DB, staffID, c.Query("staff"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	intervals, err := staffDayIntervals(config.DB, staff.ID, date, nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	settings := loadSettings(config.DB)
	grid := services.BuildSlotGrid(settings.OpeningTime, settings.ClosingTime)
	slots := services.AvailableSlots(grid, settings.OpeningTime, settings.ClosingTime, intervals, duration)

	c.JSON(http.StatusOK, gin.H{
		"staff":    staff.Name,
		"date":     date,
		"duration": duration,
		"slots":    slots,
	})
}

// UpdateAppointment applies a partial patch. The paid false->true
// transition decrements the linked product once and accrues loyalty.
func UpdateAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("id = ?", appointmentUUID).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	wasPaid := appointment.Paid

	if input.Date != nil {
		if !utils.ValidateDate(*input.Date) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		appointment.Date = *input.Date
	}
	if input.StartTime != nil {
		if !utils.ValidateClockTime(*input.StartTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time format, expected HH:MM")
			return
		}
		appointment.StartTime = *input.StartTime
	}
	if input.Duration != nil {
		if *input.Duration < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be positive")
			return
		}
		appointment.Duration = *input.Duration
	}
	if input.ClientName != nil {
		appointment.ClientName = *input.ClientName
	}
	if input.ClientID != nil {
		appointment.ClientID = input.ClientID
	}
	if input.ServiceName != nil {
		appointment.ServiceName = *input.ServiceName
	}
	if input.StaffID != nil {
		staff, err := resolveStaff(config.DB, input.StaffID, "")
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Staff member not found")
			return
		}
		appointment.StaffID = staff.ID
		appointment.StaffName = staff.Name
	}
	if input.Price != nil {
		appointment.Price = *input.Price
	}
	if input.Total != nil {
		appointment.Total = *input.Total
	}
	if input.Paid != nil {
		appointment.Paid = *input.Paid
	}

	rescheduled := input.Date != nil || input.StartTime != nil || input.Duration != nil || input.StaffID != nil
	markedPaid := !wasPaid && appointment.Paid

	// Rescheduling must not land on another booking; the re-check runs
	// inside the same transaction as the save, like the create path.
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if rescheduled {
			settings := loadSettings(tx)
			intervals, err := staffDayIntervals(tx, appointment.StaffID, appointment.Date, &appointment.ID)
			if err != nil {
				return err
			}
			if services.Conflicts(settings.OpeningTime, settings.ClosingTime, intervals, appointment.StartTime, appointment.Duration) {
				return errSlotTaken
			}
		}
		if markedPaid {
			if err := applyPaymentSideEffects(tx, &appointment); err != nil {
				return err
			}
		}
		return tx.Save(&appointment).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errSlotTaken) {
			utils.RespondWithError(c, http.StatusConflict, "This time slot is no longer available")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		}
		return
	}

	if markedPaid {
		broadcast(realtime.EventPayment, appointment)
		settings := loadSettings(config.DB)
		phone := utils.ExtractPhone(appointment.ClientName)
		if phone == "" && appointment.ClientID != nil {
			var client models.Client
			if err := config.DB.Where("id = ?", *appointment.ClientID).First(&client).Error; err == nil {
				phone = client.Phone
			}
		}
		if phone != "" && Notifier != nil {
			go Notifier.SendPaymentReceipt(phone, appointment.ClientName, appointment.Total, settings.Currency)
		}
	} else {
		broadcast(realtime.EventAppointmentUpdated, appointment)
	}

	c.JSON(http.StatusOK, appointment)
}

// applyPaymentSideEffects runs inside the payment transaction: a linked
// product loses exactly one unit (conditional update, quantity never goes
// negative) and the client accrues loyalty points, a visit and the spend.
func applyPaymentSideEffects(tx *gorm.DB, appointment *models.Appointment) error {
	var service models.Service
	err := tx.Where("name = ?", appointment.ServiceName).First(&service).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil && service.LinkedProductID != nil {
		// Fixed decrement of 1 per payment, irrespective of service count.
		if err := tx.Model(&models.Product{}).
			Where("id = ? AND quantity > 0", *service.LinkedProductID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
			return err
		}
	}

	multiplier := 1.0
	if err == nil && service.LoyaltyPointsMultiplier > 0 {
		multiplier = service.LoyaltyPointsMultiplier
	}
	points := int(math.Round(appointment.Total * multiplier))
	appointment.LoyaltyPointsEarned = points

	if appointment.ClientID != nil {
		if err := tx.Model(&models.Client{}).
			Where("id = ?", *appointment.ClientID).
			Updates(map[string]interface{}{
				"loyalty_points": gorm.Expr("loyalty_points + ?", points),
				"total_visits":   gorm.Expr("total_visits + ?", 1),
				"total_spent":    gorm.Expr("total_spent + ?", appointment.Total),
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteAppointment hard-deletes a booking; there is no audit trail.
func DeleteAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Where("id = ?", appointmentUUID).Delete(&models.Appointment{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
