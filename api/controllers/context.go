package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/hamzarauf/foodio-backend/api/middleware"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
)

// authedUserID resolves the authenticated user's id seeded by the auth middleware.
func authedUserID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
