package services

import (
	"math"
	"sort"

	"salondesk-backend/models"
)

// DefaultCommissionPercent applies when an appointment's service has been
// renamed or deleted since booking, or never had a percentage set.
const DefaultCommissionPercent = 50.0

// StaffPayrollRow is one staff member's share of the period.
type StaffPayrollRow struct {
	StaffName        string  `json:"staffName"`
	AppointmentCount int     `json:"appointmentCount"`
	Revenue          float64 `json:"revenue"`
	Commission       float64 `json:"commission"`
	Deductions       float64 `json:"deductions"`
	NetPayable       float64 `json:"netPayable"`
}

// PayrollReport is the salon/staff split for a date range.
type PayrollReport struct {
	From            string            `json:"from"`
	To              string            `json:"to"`
	Staff           []StaffPayrollRow `json:"staff"`
	TotalRevenue    float64           `json:"totalRevenue"`
	TotalCommission float64           `json:"totalCommission"`
	SalonShare      float64           `json:"salonShare"`
	TotalExpenses   float64           `json:"totalExpenses"`
	TotalDeductions float64           `json:"totalDeductions"`
	NetSalonProfit  float64           `json:"netSalonProfit"`
}

// inRange compares calendar-day strings, inclusive of both boundaries.
// Empty boundaries leave that side open.
func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// CommissionFor computes one appointment's commission. Rounding happens
// here, per appointment, never on the summed total.
func CommissionFor(total float64, percent float64) float64 {
	return math.Round(total * percent / 100)
}

// BuildPayrollReport aggregates paid appointments, expenses and deductions
// for [from, to] into per-staff totals. commissionPercents maps service
// name to its current percentage; staffFilter narrows appointments and
// deductions to one staff name when non-empty. Pure over its inputs.
func BuildPayrollReport(
	appointments []models.Appointment,
	commissionPercents map[string]float64,
	charges []models.Charge,
	deductions []models.StaffDeduction,
	from, to string,
	staffFilter string,
) PayrollReport {
	report := PayrollReport{From: from, To: to}
	rows := make(map[string]*StaffPayrollRow)

	rowFor := func(name string) *StaffPayrollRow {
		row, ok := rows[name]
		if !ok {
			row = &StaffPayrollRow{StaffName: name}
			rows[name] = row
		}
		return row
	}

	for _, appt := range appointments {
		if !appt.Paid {
			continue
		}
		if !inRange(appt.Date, from, to) {
			continue
		}
		if staffFilter != "" && appt.StaffName != staffFilter {
			continue
		}

		percent, ok := commissionPercents[appt.ServiceName]
		if !ok {
			percent = DefaultCommissionPercent
		}
		commission := CommissionFor(appt.Total, percent)

		row := rowFor(appt.StaffName)
		row.AppointmentCount++
		row.Revenue += appt.Total
		row.Commission += commission

		report.TotalRevenue += appt.Total
		report.TotalCommission += commission
	}

	for _, charge := range charges {
		if !inRange(charge.Date, from, to) {
			continue
		}
		report.TotalExpenses += charge.Amount
	}

	for _, d := range deductions {
		if !inRange(d.Date, from, to) {
			continue
		}
		if staffFilter != "" && d.StaffName != staffFilter {
			continue
		}
		rowFor(d.StaffName).Deductions += d.Amount
		report.TotalDeductions += d.Amount
	}

	for _, row := range rows {
		row.NetPayable = row.Commission - row.Deductions
		report.Staff = append(report.Staff, *row)
	}
	sort.Slice(report.Staff, func(i, j int) bool {
		return report.Staff[i].StaffName < report.Staff[j].StaffName
	})

	report.SalonShare = report.TotalRevenue - report.TotalCommission
	report.NetSalonProfit = report.SalonShare - report.TotalExpenses

	return report
}
