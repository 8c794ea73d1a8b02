package principal

import (
	"context"
	"testing"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/lib/jwt"
	"github.com/14kear/online_elections/internal/repo/memory"
	"github.com/14kear/online_elections/internal/services"
	"github.com/14kear/online_elections/utils"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "principal-secret"

func newTestProvider(users ...entity.User) *Provider {
	store := memory.NewStore()
	for _, u := range users {
		store.PutUser(u)
	}
	return NewProvider(utils.Discard(), store, secret)
}

func mustToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewToken(userID, secret, time.Minute)
	require.NoError(t, err)
	return token
}

func TestResolve_Success(t *testing.T) {
	user := entity.User{
		ID:             gofakeit.UUID(),
		OrganizationID: gofakeit.UUID(),
		Name:           gofakeit.Name(),
		Email:          gofakeit.Email(),
		Role:           entity.RoleSecretary,
		IsActive:       true,
	}
	provider := newTestProvider(user)

	p, err := provider.Resolve(context.Background(), mustToken(t, user.ID))
	require.NoError(t, err)
	assert.Equal(t, entity.Principal{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           entity.RoleSecretary,
		IsActive:       true,
	}, p)
}

func TestResolve_MissingCredential(t *testing.T) {
	_, err := newTestProvider().Resolve(context.Background(), "")
	assert.ErrorIs(t, err, services.ErrAuthentication)
}

func TestResolve_InvalidToken(t *testing.T) {
	_, err := newTestProvider().Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, services.ErrAuthentication)
}

func TestResolve_UnknownUser(t *testing.T) {
	_, err := newTestProvider().Resolve(context.Background(), mustToken(t, gofakeit.UUID()))
	assert.ErrorIs(t, err, services.ErrAuthentication)
}

func TestResolve_InactiveUser(t *testing.T) {
	user := entity.User{ID: gofakeit.UUID(), OrganizationID: gofakeit.UUID(), Role: entity.RoleMember}
	provider := newTestProvider(user)

	_, err := provider.Resolve(context.Background(), mustToken(t, user.ID))
	require.ErrorIs(t, err, services.ErrAuthorization)
	assert.Equal(t, "Account is inactive", services.Message(err))
}
