package controllers

import (
	"net/http"

	"github.com/kasmetics/storefront/api/responses"
	"github.com/kasmetics/storefront/api/validators"
	"github.com/kasmetics/storefront/internal/contacts"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
	"github.com/kasmetics/storefront/pkg/logger"
)

// SubmitContact accepts a public contact-form submission.
func SubmitContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contacts service unavailable"))
			return
		}

		var payload contacts.SubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, contact)
	}
}

// AdminListContacts serves submitted messages to the dashboard.
func AdminListContacts(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contacts service unavailable"))
			return
		}

		params, err := parsePaginationQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListSubmissions(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
