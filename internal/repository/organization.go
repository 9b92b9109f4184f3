package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/database"
	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/model"
)

type OrganizationRepository interface {
	ListAll(ctx context.Context) ([]model.Organization, error)
	FindByID(ctx context.Context, id int64) (*model.Organization, error)
	Create(ctx context.Context, params model.OrganizationParams) (*model.Organization, error)
	Update(ctx context.Context, id int64, params model.OrganizationParams) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error
}

type organizationRepo struct {
	client *database.Client
}

func NewOrganizationRepository(client *database.Client) OrganizationRepository {
	return &organizationRepo{client: client}
}

func (r *organizationRepo) ListAll(ctx context.Context) ([]model.Organization, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, organization list degraded to empty")
		return []model.Organization{}, nil
	}

	orgs := []model.Organization{}
	err = db.SelectContext(ctx, &orgs, `SELECT * FROM organizations ORDER BY name ASC`)
	if err != nil {
		log.Warn().Err(err).Msg("organization list failed, degraded to empty")
		return []model.Organization{}, nil
	}
	return orgs, nil
}

func (r *organizationRepo) FindByID(ctx context.Context, id int64) (*model.Organization, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, organization lookup degraded to not found")
		return nil, nil
	}

	var org model.Organization
	err = db.GetContext(ctx, &org, `SELECT * FROM organizations WHERE id = $1`, id)
	return HandleNotFound(&org, err)
}

func (r *organizationRepo) Create(ctx context.Context, params model.OrganizationParams) (*model.Organization, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		return nil, apperrors.DataAccess(err)
	}

	var org model.Organization
	err = db.GetContext(ctx, &org, `
		INSERT INTO organizations (name, store_url, store_key, api_key)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Name, params.StoreURL, params.StoreKey, params.APIKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to create organization")
		return nil, apperrors.DataAccess(err)
	}
	return &org, nil
}

func (r *organizationRepo) Update(ctx context.Context, id int64, params model.OrganizationParams) (*model.Organization, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		return nil, apperrors.DataAccess(err)
	}

	var org model.Organization
	err = db.GetContext(ctx, &org, `
		UPDATE organizations SET
			name = $2,
			store_url = $3,
			store_key = $4,
			api_key = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.StoreURL, params.StoreKey, params.APIKey)
	return HandleNotFound(&org, err)
}

func (r *organizationRepo) Delete(ctx context.Context, id int64) error {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		return apperrors.DataAccess(err)
	}

	_, err = db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete organization")
		return apperrors.DataAccess(err)
	}
	return nil
}
