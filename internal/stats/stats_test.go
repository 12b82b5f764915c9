package stats

import (
	"testing"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyTotal(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TransactionIncome, Amount: 100, Date: day(2026, time.August, 1)},
		{Type: models.TransactionIncome, Amount: 50, Date: day(2026, time.August, 31)},
		{Type: models.TransactionIncome, Amount: 999, Date: day(2026, time.July, 31)},
		{Type: models.TransactionExpense, Amount: 30, Date: day(2026, time.August, 15)},
	}

	if got := MonthlyTotal(transactions, models.TransactionIncome, time.August, 2026); got != 150 {
		t.Errorf("expected income 150, got %v", got)
	}
	if got := MonthlyTotal(transactions, models.TransactionExpense, time.August, 2026); got != 30 {
		t.Errorf("expected expenses 30, got %v", got)
	}
	if got := MonthlyTotal(transactions, models.TransactionIncome, time.September, 2026); got != 0 {
		t.Errorf("expected 0 for an empty month, got %v", got)
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"normal growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"growth from zero is the flat sentinel", 75, 0, 100},
		{"two empty periods", 0, 0, 0},
		{"drop to zero", 0, 80, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.current, tt.previous); got != tt.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestReturnRate(t *testing.T) {
	a := "client-a"
	b := "client-b"

	appointments := []models.Appointment{
		{ClientID: &a}, {ClientID: &a},
		{ClientID: &b},
		{ClientID: nil}, // walk-ins don't count either way
	}
	if got := ReturnRate(appointments); got != 50 {
		t.Errorf("expected 50%% return rate, got %v", got)
	}

	if got := ReturnRate(nil); got != 0 {
		t.Errorf("expected 0 for no appointments, got %v", got)
	}
	if got := ReturnRate([]models.Appointment{{ClientID: nil}}); got != 0 {
		t.Errorf("expected 0 when only walk-ins exist, got %v", got)
	}
}

func TestAverageTicket(t *testing.T) {
	if got := AverageTicket(300, 4); got != 75 {
		t.Errorf("expected 75, got %v", got)
	}
	if got := AverageTicket(300, 0); got != 0 {
		t.Errorf("expected the zero guard, got %v", got)
	}
}

func TestLowStockBoundary(t *testing.T) {
	products := []models.Product{
		{Name: "at threshold", Stock: 5, MinStock: 5},
		{Name: "below", Stock: 4, MinStock: 5},
		{Name: "plenty", Stock: 50, MinStock: 5},
	}
	low := LowStock(products)
	if len(low) != 1 || low[0].Name != "below" {
		t.Errorf("expected only the product strictly below its threshold, got %+v", low)
	}
}

func TestForMonth(t *testing.T) {
	a := "client-a"
	b := "client-b"
	transactions := []models.Transaction{
		{Type: models.TransactionIncome, Amount: 200, Date: day(2026, time.August, 3)},
		{Type: models.TransactionExpense, Amount: 40, Date: day(2026, time.August, 4)},
	}
	appointments := []models.Appointment{
		{StartsAt: day(2026, time.August, 3), ClientID: &a},
		{StartsAt: day(2026, time.August, 10), ClientID: &a},
		{StartsAt: day(2026, time.August, 12), ClientID: &b},
		{StartsAt: day(2026, time.July, 12), ClientID: &b},
	}

	got := ForMonth(transactions, appointments, time.August, 2026)
	want := MonthStats{
		Revenue:       200,
		Expenses:      40,
		Appointments:  3,
		Clients:       2,
		ReturnRate:    50,
		AverageTicket: 200.0 / 3.0,
	}
	if got != want {
		t.Errorf("ForMonth = %+v, want %+v", got, want)
	}
}
