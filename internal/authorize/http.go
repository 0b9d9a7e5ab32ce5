package authorize

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopgate/pkg/problems"
	"shopgate/pkg/shops"
)

// SettingsFunc is called once per request so configuration changes apply
// without a restart.
type SettingsFunc func() (Settings, error)

type Handler struct {
	svc      *Service
	settings SettingsFunc
	log      *zap.SugaredLogger
}

func NewHandler(svc *Service, settings SettingsFunc, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, settings: settings, log: log}
}

// RegisterHTTP mounts the OAuth entry point and callback. Shopify sends the
// merchant back to the same path with ?code=..., which completes consent.
func (h *Handler) RegisterHTTP(r chi.Router) {
	r.Get("/authenticate", h.authenticate)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	set, err := h.settings()
	if err != nil {
		h.log.Errorw("load shopify settings", "err", err)
		problems.Write(w, http.StatusInternalServerError, "settings", "App is misconfigured", "")
		return
	}
	q := r.URL.Query()
	domain, err := shops.NormalizeDomain(q.Get("shop"), set.DomainSuffix)
	if err != nil {
		problems.Write(w, http.StatusBadRequest, "invalid-shop", "Invalid shop domain", err.Error())
		return
	}

	res, err := h.svc.Authorize(r.Context(), set, domain, q.Get("code"))
	if err != nil {
		detail := "shop " + domain
		switch {
		case errors.Is(err, ErrTenantLookupFailed):
			problems.Write(w, http.StatusServiceUnavailable, "shop-lookup-failed", "Shop lookup failed", detail)
		case errors.Is(err, ErrExchangeFailed):
			problems.Write(w, http.StatusBadGateway, "exchange-failed", "Token exchange failed", detail)
		case errors.Is(err, ErrPersistenceFailed):
			problems.Write(w, http.StatusInternalServerError, "persistence-failed", "Shop was authorized but could not be saved", detail)
		default:
			problems.Write(w, http.StatusInternalServerError, "internal", "Internal error", "")
		}
		return
	}
	if !res.Completed {
		http.Redirect(w, r, res.URL, http.StatusFound)
		return
	}
	writeJSON(w, map[string]any{"completed": true, "shop": domain}, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
