package repo

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/stats"
)

// DashboardStats compares the requested month against the one before it.
type DashboardStats struct {
	Current            stats.MonthStats `json:"current"`
	Previous           stats.MonthStats `json:"previous"`
	RevenueChange      float64          `json:"revenue_change"`
	ExpensesChange     float64          `json:"expenses_change"`
	AppointmentsChange float64          `json:"appointments_change"`
	ClientsChange      float64          `json:"clients_change"`
}

type DashboardRepository interface {
	GetDashboardStats(month time.Month, year int) (DashboardStats, error)
}

func buildDashboard(current, previous stats.MonthStats) DashboardStats {
	return DashboardStats{
		Current:            current,
		Previous:           previous,
		RevenueChange:      stats.PercentChange(current.Revenue, previous.Revenue),
		ExpensesChange:     stats.PercentChange(current.Expenses, previous.Expenses),
		AppointmentsChange: stats.PercentChange(float64(current.Appointments), float64(previous.Appointments)),
		ClientsChange:      stats.PercentChange(float64(current.Clients), float64(previous.Clients)),
	}
}

// previousMonth normalizes the month-1 rollover across year boundaries.
func previousMonth(month time.Month, year int) (time.Month, int) {
	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return prev.Month(), prev.Year()
}
