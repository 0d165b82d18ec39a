package service

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxActorIDKey ctxKey = "actorID"
	ctxRoleKey    ctxKey = "role"
)

func WithActorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxActorIDKey, id)
}

func ActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxActorIDKey).(uuid.UUID)
	return v, ok
}

// Role is the closed set of actor roles the core trusts from the auth
// collaborator. Anything outside this set is rejected at the boundary.
type Role string

const (
	RoleClient  Role = "CLIENT"
	RoleVendor  Role = "VENDOR"
	RoleAdmin   Role = "ADMIN"
	RoleCourier Role = "COURIER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleVendor, RoleAdmin, RoleCourier:
		return Role(s), true
	}
	return "", false
}

func WithRole(ctx context.Context, r Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, r)
}

func RoleFromContext(ctx context.Context) (Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(Role)
	return v, ok
}

func requireAuth(ctx context.Context) (uuid.UUID, Role, error) {
	id, ok := ActorIDFromContext(ctx)
	if !ok {
		return uuid.Nil, "", ErrUnauthorized
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		return uuid.Nil, "", ErrUnauthorized
	}
	return id, role, nil
}
