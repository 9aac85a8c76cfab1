package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gotoresto/gotoresto-backend/api/middleware"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
)

// currentUserID pulls the authenticated user from the request context.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}
	return id, nil
}
