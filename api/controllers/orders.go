package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eight22lax/stringshop-backend/api/responses"
	"github.com/eight22lax/stringshop-backend/api/validators"
	internalorders "github.com/eight22lax/stringshop-backend/internal/orders"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
)

type confirmCodeBody struct {
	ConfirmCode string `json:"confirm_code" validate:"required,len=4,numeric"`
}

func pickupCodeParam(r *http.Request) (string, error) {
	code := strings.TrimSpace(chi.URLParam(r, "pickupCode"))
	if code == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "pickup code is required")
	}
	return code, nil
}

// OrderStatus returns the customer-facing order view for a pickup code.
func OrderStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		code, err := pickupCodeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PublicStatus(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ConfirmDropOff marks a paid order as dropped off at the shop.
func ConfirmDropOff(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		code, err := pickupCodeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body confirmCodeBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ConfirmDropOff(r.Context(), code, body.ConfirmCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ConfirmPickup marks a ready order as picked up by the customer.
func ConfirmPickup(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		code, err := pickupCodeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body confirmCodeBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ConfirmCustomerPickup(r.Context(), code, body.ConfirmCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ConfirmReview closes out an order after the customer leaves a review. The
// endpoint never reveals whether the code matched an order; reviewURL, when
// configured, tells the storefront where to send the customer next.
func ConfirmReview(svc internalorders.Service, reviewURL string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		code, err := pickupCodeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ConfirmReview(r.Context(), code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload := map[string]string{"status": "ok"}
		if reviewURL != "" {
			payload["review_url"] = reviewURL
		}
		responses.WriteSuccess(w, payload)
	}
}
