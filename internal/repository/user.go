package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/authz"
	"github.com/atendeai/dashboard-server-go/internal/database"
	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/model"
)

type UserRepository interface {
	Upsert(ctx context.Context, params model.UpsertUserParams) error
	FindByOpenID(ctx context.Context, openID string) (*model.User, error)
}

type userRepo struct {
	client      *database.Client
	ownerOpenID string
}

func NewUserRepository(client *database.Client, ownerOpenID string) UserRepository {
	return &userRepo{client: client, ownerOpenID: ownerOpenID}
}

// The update arm always refreshes last_signed_in so a repeat login with no
// profile changes still has an effect. The stored role is only overwritten
// when $7 is true (explicit role or owner match); a plain re-login keeps it.
const upsertUserQuery = `
	INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (open_id) DO UPDATE SET
		name = COALESCE(EXCLUDED.name, users.name),
		email = COALESCE(EXCLUDED.email, users.email),
		login_method = COALESCE(EXCLUDED.login_method, users.login_method),
		role = CASE WHEN $7 THEN EXCLUDED.role ELSE users.role END,
		last_signed_in = EXCLUDED.last_signed_in,
		updated_at = NOW()
`

// buildUpsertUserArgs resolves the role policy into positional args for
// upsertUserQuery.
func buildUpsertUserArgs(params model.UpsertUserParams, ownerOpenID string) []interface{} {
	role := authz.RoleFor(params.OpenID, ownerOpenID, params.Role)
	applyRole := authz.RoleApplies(params.OpenID, ownerOpenID, params.Role)

	lastSignedIn := time.Now()
	if params.LastSignedIn != nil {
		lastSignedIn = *params.LastSignedIn
	}

	return []interface{}{
		params.OpenID, params.Name, params.Email, params.LoginMethod,
		role, lastSignedIn, applyRole,
	}
}

// Upsert inserts or refreshes the user row keyed by open_id.
func (r *userRepo) Upsert(ctx context.Context, params model.UpsertUserParams) error {
	if params.OpenID == "" {
		return apperrors.MissingRequired("openId")
	}

	db, err := r.client.Acquire(ctx)
	if err != nil {
		return apperrors.DataAccess(err)
	}

	_, err = db.ExecContext(ctx, upsertUserQuery, buildUpsertUserArgs(params, r.ownerOpenID)...)
	if err != nil {
		log.Error().Err(err).Str("openId", params.OpenID).Msg("failed to upsert user")
		return apperrors.DataAccess(err)
	}
	return nil
}

func (r *userRepo) FindByOpenID(ctx context.Context, openID string) (*model.User, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, user lookup degraded to not found")
		return nil, nil
	}

	var user model.User
	err = db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE open_id = $1
	`, openID)
	return HandleNotFound(&user, err)
}
