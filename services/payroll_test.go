package services

import (
	"testing"

	"salondesk-backend/models"

	"github.com/stretchr/testify/require"
)

func paidAppointment(staff, service string, total float64, date string) models.Appointment {
	return models.Appointment{
		StaffName:   staff,
		ServiceName: service,
		Total:       total,
		Date:        date,
		Paid:        true,
	}
}

func TestCommissionRoundsPerAppointment(t *testing.T) {
	// Two totals of 99 at 50% yield 50+50=100, not round(198*0.5)=99.
	appointments := []models.Appointment{
		paidAppointment("Amina", "Haircut", 99, "2024-06-01"),
		paidAppointment("Amina", "Haircut", 99, "2024-06-02"),
	}
	percents := map[string]float64{"Haircut": 50}

	report := BuildPayrollReport(appointments, percents, nil, nil, "2024-06-01", "2024-06-30", "")

	require.Equal(t, 100.0, report.TotalCommission)
	require.Equal(t, 198.0, report.TotalRevenue)
	require.Equal(t, 98.0, report.SalonShare)
}

func TestCommissionOddTotals(t *testing.T) {
	appointments := []models.Appointment{
		paidAppointment("Amina", "Haircut", 100, "2024-06-01"),
		paidAppointment("Amina", "Haircut", 101, "2024-06-01"),
	}
	percents := map[string]float64{"Haircut": 50}

	report := BuildPayrollReport(appointments, percents, nil, nil, "", "", "")

	// round(50) + round(50.5) = 50 + 51
	require.Equal(t, 101.0, report.TotalCommission)
}

func TestDefaultCommissionForUnknownService(t *testing.T) {
	// The service was renamed or deleted since booking.
	appointments := []models.Appointment{
		paidAppointment("Amina", "Old Treatment", 80, "2024-06-01"),
	}

	report := BuildPayrollReport(appointments, map[string]float64{}, nil, nil, "", "", "")

	require.Equal(t, 40.0, report.TotalCommission)
}

func TestUnpaidAppointmentsIgnored(t *testing.T) {
	appointments := []models.Appointment{
		paidAppointment("Amina", "Haircut", 100, "2024-06-01"),
		{StaffName: "Amina", ServiceName: "Haircut", Total: 500, Date: "2024-06-01", Paid: false},
	}

	report := BuildPayrollReport(appointments, map[string]float64{"Haircut": 50}, nil, nil, "", "", "")

	require.Equal(t, 100.0, report.TotalRevenue)
}

func TestDateRangeInclusiveBothEnds(t *testing.T) {
	appointments := []models.Appointment{
		paidAppointment("Amina", "Haircut", 100, "2024-05-31"),
		paidAppointment("Amina", "Haircut", 100, "2024-06-01"),
		paidAppointment("Amina", "Haircut", 100, "2024-06-30"),
		paidAppointment("Amina", "Haircut", 100, "2024-07-01"),
	}

	report := BuildPayrollReport(appointments, map[string]float64{"Haircut": 50}, nil, nil, "2024-06-01", "2024-06-30", "")

	require.Equal(t, 200.0, report.TotalRevenue)
	require.Len(t, report.Staff, 1)
	require.Equal(t, 2, report.Staff[0].AppointmentCount)
}

func TestStaffFilterAppliesToAppointmentsAndDeductions(t *testing.T) {
	appointments := []models.Appointment{
		paidAppointment("Amina", "Haircut", 100, "2024-06-01"),
		paidAppointment("Bilal", "Haircut", 200, "2024-06-01"),
	}
	deductions := []models.StaffDeduction{
		{StaffName: "Amina", Amount: 10, Date: "2024-06-01"},
		{StaffName: "Bilal", Amount: 20, Date: "2024-06-01"},
	}

	report := BuildPayrollReport(appointments, map[string]float64{"Haircut": 50}, nil, deductions, "", "", "Amina")

	require.Len(t, report.Staff, 1)
	require.Equal(t, "Amina", report.Staff[0].StaffName)
	require.Equal(t, 100.0, report.TotalRevenue)
	require.Equal(t, 10.0, report.TotalDeductions)
	require.Equal(t, 40.0, report.Staff[0].NetPayable)
}

func TestExpensesAndNetProfit(t *testing.T) {
	appointments := []models.Appointment{
		paidAppointment("Amina", "Haircut", 200, "2024-06-10"),
	}
	charges := []models.Charge{
		{Category: "Rent", Amount: 50, Date: "2024-06-05"},
		{Category: "Supplies", Amount: 25, Date: "2024-07-05"}, // out of range
	}
	deductions := []models.StaffDeduction{
		{StaffName: "Amina", Amount: 30, Date: "2024-06-15"},
	}

	report := BuildPayrollReport(appointments, map[string]float64{"Haircut": 60}, charges, deductions, "2024-06-01", "2024-06-30", "")

	require.Equal(t, 120.0, report.TotalCommission)
	require.Equal(t, 80.0, report.SalonShare)
	require.Equal(t, 50.0, report.TotalExpenses)
	require.Equal(t, 30.0, report.NetSalonProfit)
	require.Equal(t, 90.0, report.Staff[0].NetPayable)
}

func TestStaffRowsSortedByName(t *testing.T) {
	appointments := []models.Appointment{
		paidAppointment("Zahra", "Haircut", 100, "2024-06-01"),
		paidAppointment("Amina", "Haircut", 100, "2024-06-01"),
	}

	report := BuildPayrollReport(appointments, map[string]float64{"Haircut": 50}, nil, nil, "", "", "")

	require.Equal(t, "Amina", report.Staff[0].StaffName)
	require.Equal(t, "Zahra", report.Staff[1].StaffName)
}
