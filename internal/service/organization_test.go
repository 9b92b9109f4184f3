package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) ListAll(ctx context.Context) ([]model.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Organization), args.Error(1)
}

func (m *mockOrgRepo) FindByID(ctx context.Context, id int64) (*model.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *mockOrgRepo) Create(ctx context.Context, params model.OrganizationParams) (*model.Organization, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *mockOrgRepo) Update(ctx context.Context, id int64, params model.OrganizationParams) (*model.Organization, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *mockOrgRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testSecretBox(t *testing.T) *util.SecretBox {
	t.Helper()
	box, err := util.NewSecretBox(strings.Repeat("ab", 32))
	require.NoError(t, err)
	return box
}

func TestOrganizationService_Create(t *testing.T) {
	t.Run("seals the store key at rest and returns it readable", func(t *testing.T) {
		repo := new(mockOrgRepo)
		svc := NewOrganizationService(repo, testSecretBox(t))

		var sealedKey string
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p model.OrganizationParams) bool {
			sealedKey = p.StoreKey
			return p.Name == "acme" && p.StoreKey != "plain-key"
		})).Return(&model.Organization{ID: 1, Name: "acme", StoreURL: "https://store.example.com"}, nil).Once()

		org, err := svc.Create(context.Background(), model.OrganizationParams{
			Name:     "acme",
			StoreURL: "https://store.example.com",
			StoreKey: "plain-key",
		})

		require.NoError(t, err)
		require.NotNil(t, org)
		assert.NotEmpty(t, sealedKey)
		assert.NotEqual(t, "plain-key", sealedKey)
		repo.AssertExpectations(t)
	})

	t.Run("without an encryption key the store key passes through", func(t *testing.T) {
		repo := new(mockOrgRepo)
		svc := NewOrganizationService(repo, nil)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(p model.OrganizationParams) bool {
			return p.StoreKey == "plain-key"
		})).Return(&model.Organization{ID: 1, StoreKey: "plain-key"}, nil)

		org, err := svc.Create(context.Background(), model.OrganizationParams{StoreKey: "plain-key"})

		require.NoError(t, err)
		assert.Equal(t, "plain-key", org.StoreKey)
	})
}

func TestOrganizationService_List(t *testing.T) {
	box := testSecretBox(t)
	sealed, err := box.Seal("secret-1")
	require.NoError(t, err)

	repo := new(mockOrgRepo)
	repo.On("ListAll", mock.Anything).Return([]model.Organization{
		{ID: 1, Name: "acme", StoreKey: sealed},
	}, nil)

	orgs, err := NewOrganizationService(repo, box).List(context.Background())

	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "secret-1", orgs[0].StoreKey)
}

func TestOrganizationService_Get(t *testing.T) {
	t.Run("opens the sealed store key", func(t *testing.T) {
		box := testSecretBox(t)
		sealed, err := box.Seal("secret-9")
		require.NoError(t, err)

		repo := new(mockOrgRepo)
		repo.On("FindByID", mock.Anything, int64(4)).Return(&model.Organization{ID: 4, StoreKey: sealed}, nil)

		org, err := NewOrganizationService(repo, box).Get(context.Background(), 4)

		require.NoError(t, err)
		assert.Equal(t, "secret-9", org.StoreKey)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		repo := new(mockOrgRepo)
		repo.On("FindByID", mock.Anything, int64(5)).Return(nil, nil)

		_, err := NewOrganizationService(repo, nil).Get(context.Background(), 5)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestOrganizationService_Update(t *testing.T) {
	t.Run("unknown id maps to not found", func(t *testing.T) {
		repo := new(mockOrgRepo)
		repo.On("Update", mock.Anything, int64(99), mock.Anything).Return(nil, nil)

		org, err := NewOrganizationService(repo, nil).Update(context.Background(), 99, model.OrganizationParams{Name: "acme"})

		require.Error(t, err)
		assert.Nil(t, org)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}
