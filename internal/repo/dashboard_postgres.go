package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
	"github.com/glowdesk/glowdesk/internal/stats"
)

type PostgresDashboardRepository struct {
	db *sql.DB
}

func NewPostgresDashboardRepository(db *sql.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) GetDashboardStats(month time.Month, year int) (DashboardStats, error) {
	current, err := r.monthStats(month, year)
	if err != nil {
		return DashboardStats{}, err
	}
	prevMonth, prevYear := previousMonth(month, year)
	previous, err := r.monthStats(prevMonth, prevYear)
	if err != nil {
		return DashboardStats{}, err
	}
	return buildDashboard(current, previous), nil
}

func (r *PostgresDashboardRepository) monthStats(month time.Month, year int) (stats.MonthStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m stats.MonthStats

	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE type = $1 AND EXTRACT(MONTH FROM date) = $2 AND EXTRACT(YEAR FROM date) = $3`
	if err := r.db.QueryRowContext(ctx, sumQuery, models.TransactionIncome, int(month), year).Scan(&m.Revenue); err != nil {
		return stats.MonthStats{}, err
	}
	if err := r.db.QueryRowContext(ctx, sumQuery, models.TransactionExpense, int(month), year).Scan(&m.Expenses); err != nil {
		return stats.MonthStats{}, err
	}

	apptWhere := `EXTRACT(MONTH FROM starts_at) = $1 AND EXTRACT(YEAR FROM starts_at) = $2`
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments WHERE `+apptWhere, int(month), year,
	).Scan(&m.Appointments); err != nil {
		return stats.MonthStats{}, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT client_id) FROM appointments WHERE client_id IS NOT NULL AND `+apptWhere,
		int(month), year,
	).Scan(&m.Clients); err != nil {
		return stats.MonthStats{}, err
	}

	var returning int
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT client_id FROM appointments
			WHERE client_id IS NOT NULL AND `+apptWhere+`
			GROUP BY client_id HAVING COUNT(*) > 1
		) returning_clients`, int(month), year,
	).Scan(&returning); err != nil {
		return stats.MonthStats{}, err
	}

	if m.Clients > 0 {
		m.ReturnRate = float64(returning) / float64(m.Clients) * 100
	}
	m.AverageTicket = stats.AverageTicket(m.Revenue, m.Appointments)
	return m, nil
}
