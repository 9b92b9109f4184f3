package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/config"
	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/repository"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

// OAuthStateStore keeps single-use login states alive between the login
// redirect and the provider callback.
type OAuthStateStore interface {
	SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}

// AuthService handles the OAuth login handshake against the external
// identity provider and maintains the local user record.
type AuthService struct {
	cfg        *config.Config
	userRepo   repository.UserRepository
	stateStore OAuthStateStore
	httpClient *http.Client
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, stateStore OAuthStateStore) *AuthService {
	return &AuthService{
		cfg:        cfg,
		userRepo:   userRepo,
		stateStore: stateStore,
		httpClient: &http.Client{Timeout: config.IdentityExchangeTimeout},
	}
}

// BeginLogin issues a single-use state parameter and returns the provider
// authorization URL to redirect the caller to.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURI string) (string, error) {
	state, err := util.GenerateToken()
	if err != nil {
		return "", err
	}

	if err := s.stateStore.SaveOAuthState(ctx, state, config.OAuthStateTTL); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}

	params := url.Values{
		"redirect_to": {redirectURI},
		"state":       {state},
	}
	return fmt.Sprintf("%s/auth/v1/authorize?%s", strings.TrimRight(s.cfg.IdentityBaseURL, "/"), params.Encode()), nil
}

// providerSession is the provider's code-exchange response. The subject id
// and provider name are mandatory; everything else is best effort.
type providerSession struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		AppMetadata struct {
			Provider string `json:"provider"`
		} `json:"app_metadata"`
		UserMetadata struct {
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

// ExchangeCode trades an authorization code for a provider session,
// upserts the local user, and returns it. No cookie is set and no user row
// is touched when the provider rejects the code or returns an incomplete
// session.
func (s *AuthService) ExchangeCode(ctx context.Context, code, state string) (*model.User, error) {
	ok, err := s.stateStore.ConsumeOAuthState(ctx, state)
	if err != nil {
		return nil, apperrors.AuthExchange("login state lookup failed", err)
	}
	if !ok {
		return nil, apperrors.AuthExchange("unknown or expired login state", nil)
	}

	session, err := s.exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	openID := session.User.AppMetadata.Provider + "|" + session.User.ID
	name := session.User.UserMetadata.FullName
	if name == "" {
		name = session.User.Email
	}

	params := model.UpsertUserParams{
		OpenID:      openID,
		LoginMethod: &session.User.AppMetadata.Provider,
	}
	if name != "" {
		params.Name = &name
	}
	if session.User.Email != "" {
		params.Email = &session.User.Email
	}

	if err := s.userRepo.Upsert(ctx, params); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Degraded store mode: the upsert would have failed before this.
		return nil, apperrors.Internal("user missing after upsert")
	}

	log.Info().Str("openId", openID).Str("provider", session.User.AppMetadata.Provider).Msg("login successful")
	return user, nil
}

func (s *AuthService) exchange(ctx context.Context, code string) (*providerSession, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/token?grant_type=authorization_code", strings.TrimRight(s.cfg.IdentityBaseURL, "/"))

	body, err := json.Marshal(map[string]string{"auth_code": code})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.cfg.IdentityAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.AuthExchange("identity provider unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.AuthExchange("failed to read provider response", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("identity provider rejected code exchange")
		return nil, apperrors.AuthExchange(providerErrorMessage(respBody, resp.StatusCode), nil)
	}

	var session providerSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, apperrors.AuthExchange("malformed provider response", err)
	}

	if session.AccessToken == "" || session.User.ID == "" || session.User.AppMetadata.Provider == "" {
		return nil, apperrors.AuthExchange("provider session incomplete", nil)
	}

	return &session, nil
}

// providerErrorMessage surfaces the provider's own message when present.
func providerErrorMessage(body []byte, status int) string {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.ErrorDescription != "":
			return payload.ErrorDescription
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	return fmt.Sprintf("code exchange failed with status %d", status)
}
