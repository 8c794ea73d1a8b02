// Package principal resolves a bearer credential to the calling principal.
package principal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/lib/jwt"
	"github.com/14kear/online_elections/internal/repo"
	"github.com/14kear/online_elections/internal/services"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

type UserProvider interface {
	GetUserByID(ctx context.Context, id string) (entity.User, error)
}

type Provider struct {
	log    *slog.Logger
	users  UserProvider
	secret string
}

func NewProvider(log *slog.Logger, users UserProvider, secret string) *Provider {
	return &Provider{log: log, users: users, secret: secret}
}

// Resolve verifies the credential and loads the user behind it. An inactive
// user resolves to an AuthorizationError.
func (p *Provider) Resolve(ctx context.Context, credential string) (entity.Principal, error) {
	const op = "principal.Resolve"

	if credential == "" {
		return entity.Principal{}, services.AuthenticationError("Authentication required")
	}

	userID, err := jwt.ParseToken(credential, p.secret)
	if err != nil {
		p.log.Debug("invalid token", slog.String("op", op), sl.Err(err))
		return entity.Principal{}, services.AuthenticationError("Invalid or expired token")
	}

	user, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return entity.Principal{}, services.AuthenticationError("User not found")
		}
		return entity.Principal{}, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		return entity.Principal{}, services.AuthorizationError("Account is inactive")
	}

	return entity.Principal{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		IsActive:       user.IsActive,
	}, nil
}
