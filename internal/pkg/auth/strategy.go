package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID string
	Role   model.Role
}

type Strategy interface {
	IssueToken(userID string, role model.Role) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
