package repository

import (
	"context"
	"fmt"
)

// CreateSchema creates the portal's relational schema if it does not
// exist yet. Role-specific entities reference the user table; the
// outbox table carries a NOTIFY trigger for the relay.
func (r *SQLRepository) CreateSchema(ctx context.Context) error {
	statements := []string{
		createUsersTable,
		createAppointmentsTable,
		createTasksTable,
		createPrescriptionsTable,
		createMedicalRecordsTable,
		createVitalsTable,
		createOutboxTable,
		createOutboxNotifyFunction,
		createOutboxNotifyTrigger,
		createUsersEmailIndex,
		createOutboxUnprocessedIndex,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	role TEXT NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	specialty TEXT,
	department TEXT,
	patient_id TEXT
)`

const createAppointmentsTable = `
CREATE TABLE IF NOT EXISTS appointments (
	id TEXT PRIMARY KEY,
	patient_id TEXT NOT NULL REFERENCES users(id),
	doctor TEXT NOT NULL,
	department TEXT,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	reason TEXT,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	assignee_id TEXT REFERENCES users(id),
	description TEXT NOT NULL,
	priority TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createPrescriptionsTable = `
CREATE TABLE IF NOT EXISTS prescriptions (
	id TEXT PRIMARY KEY,
	patient_id TEXT NOT NULL REFERENCES users(id),
	medicine TEXT NOT NULL,
	doctor TEXT NOT NULL,
	issued TEXT NOT NULL,
	status TEXT NOT NULL,
	instructions TEXT
)`

const createMedicalRecordsTable = `
CREATE TABLE IF NOT EXISTS medical_records (
	id TEXT PRIMARY KEY,
	patient_id TEXT NOT NULL REFERENCES users(id),
	record_type TEXT NOT NULL,
	summary TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createVitalsTable = `
CREATE TABLE IF NOT EXISTS vitals (
	id TEXT PRIMARY KEY,
	patient_id TEXT NOT NULL REFERENCES users(id),
	recorded_by TEXT REFERENCES users(id),
	heart_rate INTEGER,
	blood_pressure TEXT,
	temperature NUMERIC,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createOutboxTable = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id TEXT PRIMARY KEY,
	event_type TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	processed_at TIMESTAMPTZ
)`

const createOutboxNotifyFunction = `
CREATE OR REPLACE FUNCTION notify_outbox_event() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('outbox_channel', NEW.id);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`

const createOutboxNotifyTrigger = `
CREATE OR REPLACE TRIGGER outbox_events_notify
AFTER INSERT ON outbox_events
FOR EACH ROW EXECUTE FUNCTION notify_outbox_event()`

const createUsersEmailIndex = `
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`

const createOutboxUnprocessedIndex = `
CREATE INDEX IF NOT EXISTS idx_outbox_unprocessed ON outbox_events(created_at) WHERE processed_at IS NULL`
