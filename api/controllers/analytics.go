package controllers

import (
	"net/http"

	"github.com/kasmetics/storefront/api/responses"
	"github.com/kasmetics/storefront/internal/analytics"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
	"github.com/kasmetics/storefront/pkg/logger"
)

// AdminAnalytics serves the dashboard summary aggregates.
func AdminAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
