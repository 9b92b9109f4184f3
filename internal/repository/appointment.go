package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/database"
	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/model"
)

type AppointmentRepository interface {
	ListAll(ctx context.Context) ([]model.Appointment, error)
	Create(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

type appointmentRepo struct {
	client *database.Client
}

func NewAppointmentRepository(client *database.Client) AppointmentRepository {
	return &appointmentRepo{client: client}
}

func (r *appointmentRepo) ListAll(ctx context.Context) ([]model.Appointment, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, appointment list degraded to empty")
		return []model.Appointment{}, nil
	}

	appts := []model.Appointment{}
	err = db.SelectContext(ctx, &appts, `
		SELECT * FROM appointments ORDER BY scheduled_at DESC
	`)
	if err != nil {
		log.Warn().Err(err).Msg("appointment list failed, degraded to empty")
		return []model.Appointment{}, nil
	}
	return appts, nil
}

// Create inserts a new appointment; status defaults to pending. Unlike the
// read paths, store unavailability surfaces as an error so a user-initiated
// mutation never silently disappears.
func (r *appointmentRepo) Create(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		return nil, apperrors.DataAccess(err)
	}

	var appt model.Appointment
	err = db.GetContext(ctx, &appt, `
		INSERT INTO appointments (client_name, client_phone, client_email, service, scheduled_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.ClientName, params.ClientPhone, params.ClientEmail,
		params.Service, params.ScheduledAt, params.Notes)
	if err != nil {
		log.Error().Err(err).Msg("failed to create appointment")
		return nil, apperrors.DataAccess(err)
	}
	return &appt, nil
}

// UpdateStatus overwrites the status unconditionally; any transition is
// allowed and an unknown id is a silent no-op.
func (r *appointmentRepo) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		return apperrors.DataAccess(err)
	}

	_, err = db.ExecContext(ctx, `
		UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update appointment status")
		return apperrors.DataAccess(err)
	}
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id int64) error {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		return apperrors.DataAccess(err)
	}

	_, err = db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete appointment")
		return apperrors.DataAccess(err)
	}
	return nil
}
