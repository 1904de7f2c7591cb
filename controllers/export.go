// controllers/export.go
package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportCSV streams a flat tabular dump of one entity for admin download.
func ExportCSV(c *gin.Context) {
	entity := c.Param("entity")

	header, rows, err := exportRows(entity)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Unknown export entity: "+entity)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", entity))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write(header)
	for _, row := range rows {
		w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		// Headers are already sent; the stream is truncated, so log it.
		config.Log.Warn("csv export stream error",
			zap.String("entity", entity),
			zap.Error(err),
		)
	}
}

func exportRows(entity string) ([]string, [][]string, error) {
	f := strconv.FormatFloat
	switch entity {
	case "appointments":
		var items []models.Appointment
		if err := config.DB.Order("date, start_time").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, a := range items {
			rows = append(rows, []string{
				a.ID.String(), a.Date, a.StartTime, strconv.Itoa(a.Duration),
				a.ClientName, a.ServiceName, a.StaffName,
				f(a.Price, 'f', 2, 64), f(a.Total, 'f', 2, 64),
				strconv.FormatBool(a.Paid), strconv.Itoa(a.LoyaltyPointsEarned),
			})
		}
		return []string{"id", "date", "startTime", "duration", "clientName", "serviceName", "staffName", "price", "total", "paid", "loyaltyPointsEarned"}, rows, nil

	case "services":
		var items []models.Service
		if err := config.DB.Order("name").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, s := range items {
			rows = append(rows, []string{
				s.ID.String(), s.Name, f(s.Price, 'f', 2, 64), strconv.Itoa(s.Duration),
				s.Category, f(s.CommissionPercent, 'f', 1, 64),
			})
		}
		return []string{"id", "name", "price", "duration", "category", "commissionPercent"}, rows, nil

	case "staff":
		var items []models.Staff
		if err := config.DB.Order("name").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, s := range items {
			rows = append(rows, []string{s.ID.String(), s.Name, s.Color, s.Phone, s.Email, f(s.BaseSalary, 'f', 2, 64)})
		}
		return []string{"id", "name", "color", "phone", "email", "baseSalary"}, rows, nil

	case "clients":
		var items []models.Client
		if err := config.DB.Order("name").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, cl := range items {
			birthday := ""
			if cl.Birthday != nil {
				birthday = cl.Birthday.Format(utils.DayFormat)
			}
			rows = append(rows, []string{
				cl.ID.String(), cl.Name, cl.Phone, cl.Email, birthday,
				strconv.Itoa(cl.LoyaltyPoints), strconv.Itoa(cl.TotalVisits), f(cl.TotalSpent, 'f', 2, 64),
			})
		}
		return []string{"id", "name", "phone", "email", "birthday", "loyaltyPoints", "totalVisits", "totalSpent"}, rows, nil

	case "products":
		var items []models.Product
		if err := config.DB.Order("name").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, p := range items {
			rows = append(rows, []string{p.ID.String(), p.Name, strconv.Itoa(p.Quantity), strconv.Itoa(p.LowStockThreshold)})
		}
		return []string{"id", "name", "quantity", "lowStockThreshold"}, rows, nil

	case "charges":
		var items []models.Charge
		if err := config.DB.Order("date").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, ch := range items {
			rows = append(rows, []string{ch.ID.String(), ch.Category, ch.Description, f(ch.Amount, 'f', 2, 64), ch.Date})
		}
		return []string{"id", "category", "description", "amount", "date"}, rows, nil

	case "staff-deductions":
		var items []models.StaffDeduction
		if err := config.DB.Order("date").Find(&items).Error; err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, d := range items {
			rows = append(rows, []string{d.ID.String(), d.StaffName, d.Type, d.Description, f(d.Amount, 'f', 2, 64), d.Date})
		}
		return []string{"id", "staffName", "type", "description", "amount", "date"}, rows, nil
	}

	return nil, nil, fmt.Errorf("unknown entity %q", entity)
}
