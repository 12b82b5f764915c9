package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

const transactionColumns = `id, type, category, amount, date, description, appointment_id, client_id, payment_method, notes, created_at, updated_at`

func (r *PostgresTransactionRepository) Create(t models.Transaction) (models.Transaction, error) {
	query := `INSERT INTO transactions (type, category, amount, date, description, appointment_id, client_id, payment_method, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		t.Type, t.Category, t.Amount, t.Date, t.Description,
		t.AppointmentID, t.ClientID, t.PaymentMethod, t.Notes,
		t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	return t, err
}

func (r *PostgresTransactionRepository) GetByID(id string) (models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return t, err
}

// Update writes only the fields supplied in patch; everything else keeps its
// stored value.
func (r *PostgresTransactionRepository) Update(id string, patch TransactionPatch) (models.Transaction, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.AppointmentID != nil {
		add("appointment_id", *patch.AppointmentID)
	}
	if patch.ClientID != nil {
		add("client_id", *patch.ClientID)
	}
	if patch.PaymentMethod != nil {
		add("payment_method", *patch.PaymentMethod)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	add("updated_at", time.Now().UTC())

	query := "UPDATE transactions SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argIdx, transactionColumns)
	args = append(args, id)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return t, err
}

func (r *PostgresTransactionRepository) Delete(id string) error {
	query := `DELETE FROM transactions WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *PostgresTransactionRepository) Filter(f TransactionFilter) ([]models.Transaction, int, error) {
	conditions := ""
	args := []any{}
	argIdx := 1

	if f.Type != "" {
		conditions += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, f.Type)
		argIdx++
	}
	if f.From != nil {
		conditions += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		conditions += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *f.To)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM transactions WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1` + conditions + ` ORDER BY date DESC, created_at DESC`
	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return transactions, totalCount, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	var appointmentID, clientID sql.NullString
	err := row.Scan(&t.ID, &t.Type, &t.Category, &t.Amount, &t.Date, &t.Description,
		&appointmentID, &clientID, &t.PaymentMethod, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Transaction{}, err
	}
	if appointmentID.Valid {
		t.AppointmentID = &appointmentID.String
	}
	if clientID.Valid {
		t.ClientID = &clientID.String
	}
	return t, nil
}
