package model

import (
	"time"
)

type Appointment struct {
	ID          int64             `db:"id" json:"id"`
	ClientName  string            `db:"client_name" json:"clientName"`
	ClientPhone string            `db:"client_phone" json:"clientPhone"`
	ClientEmail *string           `db:"client_email" json:"clientEmail,omitempty"`
	Service     string            `db:"service" json:"service"`
	ScheduledAt time.Time         `db:"scheduled_at" json:"scheduledAt"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Notes       *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updatedAt"`
}

type CreateAppointmentParams struct {
	ClientName  string
	ClientPhone string
	ClientEmail *string
	Service     string
	ScheduledAt time.Time
	Notes       *string
}
