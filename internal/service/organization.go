package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/repository"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

// OrganizationService manages tenant records. Store keys are sealed with
// the configured SecretBox before they hit the database and opened on the
// way out; with no encryption key configured they pass through unchanged.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	secrets *util.SecretBox
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, secrets *util.SecretBox) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, secrets: secrets}
}

func (s *OrganizationService) List(ctx context.Context) ([]model.Organization, error) {
	orgs, err := s.orgRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orgs {
		opened, err := s.secrets.Open(orgs[i].StoreKey)
		if err != nil {
			log.Warn().Err(err).Int64("id", orgs[i].ID).Msg("failed to decrypt organization store key")
			continue
		}
		orgs[i].StoreKey = opened
	}
	return orgs, nil
}

func (s *OrganizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperrors.NotFound("Organization")
	}

	opened, openErr := s.secrets.Open(org.StoreKey)
	if openErr == nil {
		org.StoreKey = opened
	}
	return org, nil
}

func (s *OrganizationService) Create(ctx context.Context, params model.OrganizationParams) (*model.Organization, error) {
	sealed, err := s.secrets.Seal(params.StoreKey)
	if err != nil {
		return nil, apperrors.Internal("failed to encrypt store key").WithCause(err)
	}
	params.StoreKey = sealed

	org, err := s.orgRepo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("id", org.ID).Str("name", org.Name).
		Str("storeKey", util.MaskSecret(params.StoreKey)).
		Msg("organization created")

	opened, openErr := s.secrets.Open(org.StoreKey)
	if openErr == nil {
		org.StoreKey = opened
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, id int64, params model.OrganizationParams) (*model.Organization, error) {
	sealed, err := s.secrets.Seal(params.StoreKey)
	if err != nil {
		return nil, apperrors.Internal("failed to encrypt store key").WithCause(err)
	}
	params.StoreKey = sealed

	org, err := s.orgRepo.Update(ctx, id, params)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.DataAccess(err)
	}
	if org == nil {
		return nil, apperrors.NotFound("Organization")
	}

	opened, openErr := s.secrets.Open(org.StoreKey)
	if openErr == nil {
		org.StoreKey = opened
	}
	return org, nil
}

func (s *OrganizationService) Delete(ctx context.Context, id int64) error {
	return s.orgRepo.Delete(ctx, id)
}
