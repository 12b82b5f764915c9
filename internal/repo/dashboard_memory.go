package repo

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/stats"
)

// InMemoryDashboardRepository derives the dashboard from the in-memory
// transaction and appointment repositories it is pointed at.
type InMemoryDashboardRepository struct {
	transactions *InMemoryTransactionRepository
	appointments *InMemoryAppointmentRepository
}

func NewInMemoryDashboardRepository() *InMemoryDashboardRepository {
	return &InMemoryDashboardRepository{}
}

func (r *InMemoryDashboardRepository) SetRepositories(t *InMemoryTransactionRepository, a *InMemoryAppointmentRepository) {
	r.transactions = t
	r.appointments = a
}

func (r *InMemoryDashboardRepository) GetDashboardStats(month time.Month, year int) (DashboardStats, error) {
	transactions := r.transactions.All()
	appointments := r.appointments.All()

	current := stats.ForMonth(transactions, appointments, month, year)
	prevMonth, prevYear := previousMonth(month, year)
	previous := stats.ForMonth(transactions, appointments, prevMonth, prevYear)
	return buildDashboard(current, previous), nil
}
