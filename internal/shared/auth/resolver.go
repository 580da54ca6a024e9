package auth

import (
	"context"
	"strings"

	"metalpedia-backend/internal/shared/apperr"
	"metalpedia-backend/pkg/jwt"
)

const (
	ModeAddress = "address"
	ModeJWT     = "jwt"
)

var (
	ErrMalformedHeader = apperr.Unauthenticated("UNAUTHORIZED", "Unauthorized")
	ErrInvalidToken    = apperr.Unauthenticated("INVALID_TOKEN", "Invalid token")
	ErrRoleLookup      = apperr.Dependency("ROLE_LOOKUP_FAILED", "Failed to resolve user role", nil)
)

// RoleLookup finds the stored role for an address. found=false means no users row.
type RoleLookup interface {
	RoleOf(ctx context.Context, address string) (role Role, found bool, err error)
}

// Resolver turns a bearer token into the acting principal
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}

// ParseBearer extracts the token from an Authorization header value
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", apperr.ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", ErrMalformedHeader
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMalformedHeader
	}
	return token, nil
}

// AddressResolver trusts the token as the wallet address
type AddressResolver struct {
	roles RoleLookup
}

func NewAddressResolver(roles RoleLookup) *AddressResolver {
	return &AddressResolver{roles: roles}
}

func (r *AddressResolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	return principalFor(ctx, r.roles, token)
}

// SignedResolver accepts only tokens signed by the wallet sign-in provider
type SignedResolver struct {
	roles  RoleLookup
	tokens *jwt.Manager
}

func NewSignedResolver(roles RoleLookup, tokens *jwt.Manager) *SignedResolver {
	return &SignedResolver{roles: roles, tokens: tokens}
}

func (r *SignedResolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	claims, err := r.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}
	return principalFor(ctx, r.roles, claims.Address)
}

// NewResolver picks the implementation for AUTH_MODE
func NewResolver(mode string, roles RoleLookup, tokens *jwt.Manager) Resolver {
	if mode == ModeJWT && tokens != nil {
		return NewSignedResolver(roles, tokens)
	}
	return NewAddressResolver(roles)
}

func principalFor(ctx context.Context, roles RoleLookup, address string) (*Principal, error) {
	if address == "" {
		return nil, apperr.ErrMissingToken
	}
	role, found, err := roles.RoleOf(ctx, address)
	if err != nil {
		return nil, ErrRoleLookup.Wrap(err)
	}
	if !found || !role.Valid() {
		role = RoleUser
	}
	return &Principal{Address: address, Role: role}, nil
}
