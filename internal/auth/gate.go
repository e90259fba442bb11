package auth

import (
	"context"

	"github.com/google/uuid"

	"blogapp/internal/errors"
	"blogapp/internal/logger"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// State is the outcome of authenticating one request.
type State int

const (
	StateNoToken State = iota
	StateInvalidToken
	StateRevokedToken
	StateUnknownUser
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateNoToken:
		return "no_token"
	case StateInvalidToken:
		return "invalid_token"
	case StateRevokedToken:
		return "revoked_token"
	case StateUnknownUser:
		return "unknown_user"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the gate's verdict. User and Claims are set only when State is StateAuthenticated.
type Identity struct {
	State  State
	User   *model.User
	Claims *Claims
}

// Authenticated reports whether the request may proceed.
func (i Identity) Authenticated() bool {
	return i.State == StateAuthenticated && i.User != nil
}

// TokenVerifier validates raw session tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserFinder resolves users by id.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Gate resolves the caller of a protected request from its session token.
type Gate struct {
	tokens  TokenVerifier
	users   UserFinder
	revoked RevocationStore
	logger  *logger.Logger
}

// NewGate creates a Gate.
func NewGate(tokens TokenVerifier, users UserFinder, revoked RevocationStore, logger *logger.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, revoked: revoked, logger: logger}
}

// Authenticate never fails: every problem degrades to an unauthenticated Identity.
// The user is loaded from the store on every call so a valid token for a missing
// user is not accepted.
func (g *Gate) Authenticate(ctx context.Context, rawToken string) Identity {
	if rawToken == "" {
		return Identity{State: StateNoToken}
	}

	claims, err := g.tokens.Verify(rawToken)
	if err != nil {
		g.logger.Debug("session token rejected", "error", err)
		return Identity{State: StateInvalidToken}
	}

	if revoked, err := g.revoked.IsRevoked(ctx, claims.ID); err != nil {
		g.logger.Warn("revocation check failed", "error", err, "jti", claims.ID)
	} else if revoked {
		return Identity{State: StateRevokedToken}
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return Identity{State: StateInvalidToken}
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return Identity{State: StateUnknownUser}
		}
		errors.LogError(g.logger.Logger, "authenticate: load user", errors.StoreFailure(err, "user_id", userID.String()))
		return Identity{State: StateInvalidToken}
	}
	if user == nil {
		return Identity{State: StateUnknownUser}
	}

	return Identity{State: StateAuthenticated, User: user, Claims: claims}
}
