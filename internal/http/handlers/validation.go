package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

const dateLayout = "2006-01-02"

func validateTransaction(t TransactionRequest) []FieldError {
	errs := []FieldError{}
	if t.Type != models.TransactionIncome && t.Type != models.TransactionExpense {
		errs = append(errs, FieldError{Field: "Type", Description: "Type must be 'income' or 'expense'"})
	}
	if strings.TrimSpace(t.Category) == "" {
		errs = append(errs, FieldError{Field: "Category", Description: "Category is required"})
	}
	if t.Amount == nil {
		errs = append(errs, FieldError{Field: "Amount", Description: "Amount is required"})
	}
	if t.Date == "" {
		errs = append(errs, FieldError{Field: "Date", Description: "Date is required"})
	} else if _, err := time.Parse(dateLayout, t.Date); err != nil {
		errs = append(errs, FieldError{Field: "Date", Description: "Date must be YYYY-MM-DD"})
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, FieldError{Field: "Description", Description: "Description is required"})
	}
	return errs
}

func validateAppointment(a AppointmentRequest) []FieldError {
	errs := []FieldError{}
	starts, startsErr := time.Parse(time.RFC3339, a.StartsAt)
	if startsErr != nil {
		errs = append(errs, FieldError{Field: "StartsAt", Description: "StartsAt must be an RFC3339 timestamp"})
	}
	ends, endsErr := time.Parse(time.RFC3339, a.EndsAt)
	if endsErr != nil {
		errs = append(errs, FieldError{Field: "EndsAt", Description: "EndsAt must be an RFC3339 timestamp"})
	}
	if startsErr == nil && endsErr == nil && !ends.After(starts) {
		errs = append(errs, FieldError{Field: "EndsAt", Description: "EndsAt must be after StartsAt"})
	}
	if a.Status != "" && !models.ValidStatus(a.Status) {
		errs = append(errs, FieldError{Field: "Status", Description: "Status must be confirmed, pending or cancelled"})
	}
	return errs
}

func validateClient(c ClientRequest) []FieldError {
	errs := []FieldError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, FieldError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs = append(errs, FieldError{Field: "Phone", Description: "Phone is required"})
	}
	if c.BirthDate != "" {
		if _, err := time.Parse(dateLayout, c.BirthDate); err != nil {
			errs = append(errs, FieldError{Field: "BirthDate", Description: "BirthDate must be YYYY-MM-DD"})
		}
	}
	if c.Status != "" && c.Status != models.ClientActive && c.Status != models.ClientInactive {
		errs = append(errs, FieldError{Field: "Status", Description: "Status must be active or inactive"})
	}
	return errs
}

func validateProduct(p ProductRequest) []FieldError {
	errs := []FieldError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{Field: "Name", Description: "Name is required"})
	}
	if !validDecimal(p.Price) {
		errs = append(errs, FieldError{Field: "Price", Description: "Price must be a decimal string"})
	}
	if p.Cost != "" && !validDecimal(p.Cost) {
		errs = append(errs, FieldError{Field: "Cost", Description: "Cost must be a decimal string"})
	}
	if p.Stock < 0 {
		errs = append(errs, FieldError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	if p.MinStock != nil && *p.MinStock < 0 {
		errs = append(errs, FieldError{Field: "MinStock", Description: "MinStock cannot be negative"})
	}
	return errs
}

func validDecimal(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
