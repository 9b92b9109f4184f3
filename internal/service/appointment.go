package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/repository"
)

type AppointmentService struct {
	apptRepo repository.AppointmentRepository
}

func NewAppointmentService(apptRepo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{apptRepo: apptRepo}
}

func (s *AppointmentService) List(ctx context.Context) ([]model.Appointment, error) {
	return s.apptRepo.ListAll(ctx)
}

func (s *AppointmentService) Create(ctx context.Context, params model.CreateAppointmentParams) (*model.Appointment, error) {
	appt, err := s.apptRepo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("id", appt.ID).Str("service", appt.Service).Msg("appointment created")
	return appt, nil
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	return s.apptRepo.UpdateStatus(ctx, id, status)
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return s.apptRepo.Delete(ctx, id)
}
