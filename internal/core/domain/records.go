package domain

import "time"

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task is a nurse care task. Status transitions are deliberately
// unconstrained: any status may follow any other, and re-applying the
// current status is a no-op rather than an error.
type Task struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID         string            `json:"id"`
	PatientID  string            `json:"patient_id"`
	Doctor     string            `json:"doctor"`
	Department string            `json:"department"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Reason     string            `json:"reason,omitempty"`
	Status     AppointmentStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftNight     Shift = "night"
)

type AssignmentStatus string

const (
	AssignmentActive AssignmentStatus = "active"
	AssignmentEnded  AssignmentStatus = "ended"
)

// Assignment pairs a nurse with a doctor for a shift.
type Assignment struct {
	ID        string           `json:"id"`
	Doctor    string           `json:"doctor"`
	Nurse     string           `json:"nurse"`
	Shift     Shift            `json:"shift"`
	Status    AssignmentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

type AvailabilityStatus string

const (
	DoctorAvailable   AvailabilityStatus = "available"
	DoctorUnavailable AvailabilityStatus = "unavailable"
)

// Availability is a doctor's self-reported availability status.
type Availability struct {
	DoctorID  string             `json:"doctor_id"`
	Name      string             `json:"name"`
	Specialty string             `json:"specialty"`
	Status    AvailabilityStatus `json:"status"`
	From      string             `json:"from,omitempty"`
	To        string             `json:"to,omitempty"`
	Note      string             `json:"note,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type PrescriptionStatus string

const (
	PrescriptionActive  PrescriptionStatus = "active"
	PrescriptionExpired PrescriptionStatus = "expired"
)

type Prescription struct {
	ID           string             `json:"id"`
	PatientID    string             `json:"patient_id"`
	Medicine     string             `json:"medicine"`
	Doctor       string             `json:"doctor"`
	Issued       string             `json:"issued"`
	Status       PrescriptionStatus `json:"status"`
	Instructions string             `json:"instructions,omitempty"`
}
