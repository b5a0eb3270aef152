package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eight22lax/stringshop-backend/api/responses"
	"github.com/eight22lax/stringshop-backend/api/validators"
	"github.com/eight22lax/stringshop-backend/internal/inventory"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
)

// AdminInventoryList returns every inventory row, active or not.
func AdminInventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.AdminList(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

type setStockBody struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

// AdminSetInventoryStock replaces the stock count for an item.
func AdminSetInventoryStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		priceID := strings.TrimSpace(chi.URLParam(r, "priceId"))
		if priceID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price id is required"))
			return
		}
		var body setStockBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateStock(r.Context(), priceID, *body.Stock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminSyncInventory pulls the active Stripe catalog into the inventory table.
func AdminSyncInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		result, err := svc.SyncFromStripe(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
