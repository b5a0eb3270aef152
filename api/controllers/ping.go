package controllers

import (
	"net/http"

	"github.com/eight22lax/stringshop-backend/api/middleware"
	"github.com/eight22lax/stringshop-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "admin", "status": "ok"}
		if email := middleware.UserEmailFromContext(r.Context()); email != "" {
			payload["user_email"] = email
		}
		responses.WriteSuccess(w, payload)
	}
}
