// Package stats computes the dashboard figures from plain collections, so the
// same arithmetic backs both the SQL and the in-memory dashboard repositories.
package stats

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

// MonthStats is one calendar month of dashboard figures.
type MonthStats struct {
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	Appointments  int     `json:"appointments"`
	Clients       int     `json:"clients"`
	ReturnRate    float64 `json:"return_rate"`
	AverageTicket float64 `json:"average_ticket"`
}

// InMonth reports whether ts falls in the given calendar month.
func InMonth(ts time.Time, month time.Month, year int) bool {
	return ts.Month() == month && ts.Year() == year
}

// MonthlyTotal sums the amounts of transactions of the given type whose date
// falls in the given calendar month.
func MonthlyTotal(transactions []models.Transaction, typ string, month time.Month, year int) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type == typ && InMonth(t.Date, month, year) {
			total += t.Amount
		}
	}
	return total
}

// AppointmentsIn returns the appointments whose start falls in the given month.
func AppointmentsIn(appointments []models.Appointment, month time.Month, year int) []models.Appointment {
	var out []models.Appointment
	for _, a := range appointments {
		if InMonth(a.StartsAt, month, year) {
			out = append(out, a)
		}
	}
	return out
}

// ReturnRate is the percentage of distinct clients with more than one
// appointment in the slice. Appointments without a client are ignored.
func ReturnRate(appointments []models.Appointment) float64 {
	visits := map[string]int{}
	for _, a := range appointments {
		if a.ClientID != nil {
			visits[*a.ClientID]++
		}
	}
	if len(visits) == 0 {
		return 0
	}
	returning := 0
	for _, n := range visits {
		if n > 1 {
			returning++
		}
	}
	return float64(returning) / float64(len(visits)) * 100
}

// AverageTicket is revenue divided by appointment count, zero-guarded.
func AverageTicket(revenue float64, appointments int) float64 {
	if appointments == 0 {
		return 0
	}
	return revenue / float64(appointments)
}

// PercentChange computes (current-previous)/previous*100. Growth from a zero
// previous value is reported as a flat 100% increase; that sentinel is the
// documented behavior, not a rounding artifact.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

// LowStock returns the products below their restock threshold.
func LowStock(products []models.Product) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}

// ForMonth assembles the full month snapshot from raw collections.
func ForMonth(transactions []models.Transaction, appointments []models.Appointment, month time.Month, year int) MonthStats {
	monthAppts := AppointmentsIn(appointments, month, year)
	clients := map[string]struct{}{}
	for _, a := range monthAppts {
		if a.ClientID != nil {
			clients[*a.ClientID] = struct{}{}
		}
	}

	revenue := MonthlyTotal(transactions, models.TransactionIncome, month, year)
	return MonthStats{
		Revenue:       revenue,
		Expenses:      MonthlyTotal(transactions, models.TransactionExpense, month, year),
		Appointments:  len(monthAppts),
		Clients:       len(clients),
		ReturnRate:    ReturnRate(monthAppts),
		AverageTicket: AverageTicket(revenue, len(monthAppts)),
	}
}
