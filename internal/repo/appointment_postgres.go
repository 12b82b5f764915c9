package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

type PostgresAppointmentRepository struct {
	db *sql.DB
}

func NewPostgresAppointmentRepository(db *sql.DB) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

const appointmentColumns = `id, starts_at, ends_at, client_id, service, client_initials, color, status, notes, created_at, updated_at`

func (r *PostgresAppointmentRepository) Create(a models.Appointment) (models.Appointment, error) {
	query := `INSERT INTO appointments (starts_at, ends_at, client_id, service, client_initials, color, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		a.StartsAt, a.EndsAt, a.ClientID, a.Service, a.ClientInitials,
		a.Color, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	return a, err
}

func (r *PostgresAppointmentRepository) GetByID(id string) (models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	return a, err
}

func (r *PostgresAppointmentRepository) Update(id string, patch AppointmentPatch) (models.Appointment, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.StartsAt != nil {
		add("starts_at", *patch.StartsAt)
	}
	if patch.EndsAt != nil {
		add("ends_at", *patch.EndsAt)
	}
	if patch.ClientID != nil {
		add("client_id", *patch.ClientID)
	}
	if patch.Service != nil {
		add("service", *patch.Service)
	}
	if patch.ClientInitials != nil {
		add("client_initials", *patch.ClientInitials)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	add("updated_at", time.Now().UTC())

	query := "UPDATE appointments SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argIdx, appointmentColumns)
	args = append(args, id)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	return a, err
}

func (r *PostgresAppointmentRepository) Delete(id string) error {
	query := `DELETE FROM appointments WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PostgresAppointmentRepository) Filter(f AppointmentFilter) ([]models.Appointment, int, error) {
	conditions := ""
	args := []any{}
	argIdx := 1

	if f.From != nil {
		conditions += fmt.Sprintf(" AND starts_at >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		conditions += fmt.Sprintf(" AND starts_at <= $%d", argIdx)
		args = append(args, *f.To)
		argIdx++
	}
	if f.ClientID != "" {
		conditions += fmt.Sprintf(" AND client_id = $%d", argIdx)
		args = append(args, f.ClientID)
		argIdx++
	}
	if f.Status != "" {
		conditions += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM appointments WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1` + conditions + ` ORDER BY starts_at`
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

	var appointments []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return appointments, totalCount, nil
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var a models.Appointment
	var clientID sql.NullString
	err := row.Scan(&a.ID, &a.StartsAt, &a.EndsAt, &clientID, &a.Service,
		&a.ClientInitials, &a.Color, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Appointment{}, err
	}
	if clientID.Valid {
		a.ClientID = &clientID.String
	}
	return a, nil
}
