package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// SQLRepository backs the credential records and the outbox with
// Postgres.
type SQLRepository struct {
	db *sql.DB
}

var (
	_ ports.UserRepository   = (*SQLRepository)(nil)
	_ ports.OutboxRepository = (*SQLRepository)(nil)
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(
		ctx,
		`SELECT id, email, name, role, password, created_at,
		        COALESCE(specialty, ''), COALESCE(department, ''), COALESCE(patient_id, '')
		 FROM users WHERE email = $1`,
		email,
	))
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(
		ctx,
		`SELECT id, email, name, role, password, created_at,
		        COALESCE(specialty, ''), COALESCE(department, ''), COALESCE(patient_id, '')
		 FROM users WHERE id = $1`,
		id,
	))
}

func (r *SQLRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.Password,
		&user.CreatedAt,
		&user.Specialty,
		&user.Department,
		&user.PatientID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user row and, when outboxPayload is non-nil, the
// outbox event in the same transaction so a registration and its event
// commit or roll back together.
func (r *SQLRepository) Create(ctx context.Context, user domain.User, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, name, role, password, created_at, specialty, department, patient_id)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))`,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		user.Password,
		user.CreatedAt,
		user.Specialty,
		user.Department,
		user.PatientID,
	)
	if err != nil {
		return err
	}

	if outboxPayload != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outbox_events (id, event_type, payload) VALUES ($1, $2, $3)`,
			uuid.NewString(),
			ports.EventUserRegistered,
			outboxPayload,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLRepository) Add(ctx context.Context, eventType string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outbox_events (id, event_type, payload) VALUES ($1, $2, $3)`,
		uuid.NewString(),
		eventType,
		payload,
	)
	return err
}
