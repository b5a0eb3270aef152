package controllers

import (
	"net/http"

	"github.com/eight22lax/stringshop-backend/api/responses"
	"github.com/eight22lax/stringshop-backend/api/validators"
	checkoutsvc "github.com/eight22lax/stringshop-backend/internal/checkout"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
)

// Checkout opens a Stripe checkout session for the storefront cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var input checkoutsvc.CreateSessionInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CreateSession(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}
