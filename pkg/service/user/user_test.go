package user_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/internal/fixtures"
	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/user"
)

func newService(t *testing.T) *user.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return user.New(fixtures.NewUoW(), logger)
}

func TestRegister(t *testing.T) {
	svc := newService(t)

	u, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "sam", Email: "sam@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam", u.Username)
	assert.Equal(t, string(domain.RoleUser), u.Role)

	got, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	svc := newService(t)

	// The service validates on its own: callers that skip the HTTP layer,
	// like the admin CLI, hit the same rules.
	cases := []dto.RegisterRequest{
		{Username: "sam", Email: "sam@example.com", Password: "short"},
		{Username: "sam", Email: "not-an-email", Password: "secret-pass"},
		{Username: "ab", Email: "sam@example.com", Password: "secret-pass"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrValidation, "username=%q email=%q", req.Username, req.Email)
	}
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "sam", Email: "sam@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Username: "sam", Email: "other@example.com", Password: "secret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Username: "other", Email: "sam@example.com", Password: "secret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
