package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

type PostgresClientRepository struct {
	db *sql.DB
}

func NewPostgresClientRepository(db *sql.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

const clientColumns = `id, name, phone, email, birth_date, status, created_at, updated_at`

func (r *PostgresClientRepository) Create(c models.Client) (models.Client, error) {
	query := `INSERT INTO clients (name, phone, email, birth_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Phone, c.Email, c.BirthDate, c.Status, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return c, err
}

func (r *PostgresClientRepository) GetAll() ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *PostgresClientRepository) GetByID(id string) (models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrClientNotFound
	}
	return c, err
}

func (r *PostgresClientRepository) Update(id string, patch ClientPatch) (models.Client, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.BirthDate != nil {
		add("birth_date", *patch.BirthDate)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	add("updated_at", time.Now().UTC())

	query := "UPDATE clients SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", argIdx, clientColumns)
	args = append(args, id)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := scanClient(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrClientNotFound
	}
	return c, err
}

func (r *PostgresClientRepository) Delete(id string) error {
	query := `DELETE FROM clients WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func scanClient(row rowScanner) (models.Client, error) {
	var c models.Client
	var birthDate sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &birthDate, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Client{}, err
	}
	if birthDate.Valid {
		c.BirthDate = &birthDate.Time
	}
	return c, nil
}
