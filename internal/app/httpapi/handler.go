// Package httpapi exposes the application services over REST, plus the
// operational endpoints: health, metrics, system status, the audit trail and
// the notification websocket.
package httpapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app "github.com/roamdine/platform/internal/app"
	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/agent"
	"github.com/roamdine/platform/internal/app/domain/booking"
	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/app/domain/file"
	"github.com/roamdine/platform/internal/app/domain/inventory"
	"github.com/roamdine/platform/internal/app/domain/listing"
	"github.com/roamdine/platform/internal/app/domain/message"
	"github.com/roamdine/platform/internal/app/domain/notification"
	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/domain/payment"
	searchdoc "github.com/roamdine/platform/internal/app/domain/search"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/domain/user"
	"github.com/roamdine/platform/internal/app/metrics"
	"github.com/roamdine/platform/internal/app/system"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// Config assembles the handler dependencies.
type Config struct {
	App    *app.Application
	Audits *audit.Trail
	Hub    *Hub
	Log    *logger.Logger

	// RequestsPerSec caps per-client request throughput at the edge.
	// Zero disables the cap.
	RequestsPerSec float64
}

type handler struct {
	app    *app.Application
	audits *audit.Trail
	hub    *Hub
	log    *logger.Logger
}

// NewHandler returns the router exposing the core REST API.
func NewHandler(cfg Config) http.Handler {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: cfg.App, audits: cfg.Audits, hub: cfg.Hub, log: log}

	r := chi.NewRouter()
	r.Use(correlationMiddleware)
	r.Use(h.actorMiddleware)
	if cfg.RequestsPerSec > 0 {
		r.Use(throttleMiddleware(cfg.RequestsPerSec))
	}
	r.Use(instrumentMiddleware)

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/system/status", h.systemStatus)
	r.Get("/audit", h.auditEntries)
	if h.hub != nil {
		r.Get("/ws", h.hub.Serve)
	}

	r.Post("/auth/login", h.login)
	r.Post("/users", h.registerUser)
	r.Get("/users", listEndpoint(h.app.Users.List))
	r.Get("/users/{id}", getEndpoint(h.app.Users.Get))
	r.Get("/sessions", listEndpoint(h.app.Auth.ListSessions))
	r.Get("/sessions/{id}", getEndpoint(h.app.Auth.GetSession))

	mountResource(r, "/tenants", h.app.Tenants.Create, h.app.Tenants.Get, h.app.Tenants.List, func() *tenant.Tenant { return &tenant.Tenant{} })
	mountResource(r, "/listings", h.app.Listings.Create, h.app.Listings.Get, h.app.Listings.List, func() *listing.Listing { return &listing.Listing{} })
	mountResource(r, "/bookings", h.app.Bookings.Create, h.app.Bookings.Get, h.app.Bookings.List, func() *booking.Booking { return &booking.Booking{} })
	mountResource(r, "/orders", h.app.Orders.Create, h.app.Orders.Get, h.app.Orders.List, func() *order.Order { return &order.Order{} })
	mountResource(r, "/payments", h.app.Payments.Create, h.app.Payments.Get, h.app.Payments.List, func() *payment.Payment { return &payment.Payment{} })
	mountResource(r, "/inventory", h.app.Inventory.Create, h.app.Inventory.Get, h.app.Inventory.List, func() *inventory.Item { return &inventory.Item{} })
	mountResource(r, "/files", h.app.Files.Create, h.app.Files.Get, h.app.Files.List, func() *file.File { return &file.File{} })
	mountResource(r, "/messages", h.app.Messaging.Create, h.app.Messaging.Get, h.app.Messaging.List, func() *message.Message { return &message.Message{} })
	mountResource(r, "/notifications", h.app.Notifications.Create, h.app.Notifications.Get, h.app.Notifications.List, func() *notification.Notification { return &notification.Notification{} })
	mountResource(r, "/documents", h.app.Search.Create, h.app.Search.Get, h.app.Search.List, func() *searchdoc.Document { return &searchdoc.Document{} })
	mountResource(r, "/agents", h.app.Agents.Create, h.app.Agents.Get, h.app.Agents.List, func() *agent.Agent { return &agent.Agent{} })

	return r
}

type createFunc[T entity.Entity] func(ctx context.Context, record T, actor usecase.Context) (T, error)
type getFunc[T entity.Entity] func(ctx context.Context, id string, actor usecase.Context) (T, error)
type listFunc[T entity.Entity] func(ctx context.Context, actor usecase.Context) ([]T, error)

func mountResource[T entity.Entity](r chi.Router, path string, create createFunc[T], get getFunc[T], list listFunc[T], blank func() T) {
	r.Post(path, func(w http.ResponseWriter, req *http.Request) {
		record := blank()
		if err := decodeJSON(req.Body, record); err != nil {
			writeError(w, errors.Validation(err.Error()))
			return
		}
		created, err := create(req.Context(), record, actorFrom(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})
	r.Get(path, listEndpoint(list))
	r.Get(path+"/{id}", getEndpoint(get))
}

func getEndpoint[T entity.Entity](get getFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		record, err := get(req.Context(), chi.URLParam(req, "id"), actorFrom(req))
		if err != nil {
			writeError(w, err)
			return
		}
		var zero T
		if any(record) == any(zero) {
			writeErrorStatus(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func listEndpoint[T entity.Entity](list listFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		records, err := list(req.Context(), actorFrom(req))
		if err != nil {
			writeError(w, err)
			return
		}
		if records == nil {
			records = []T{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, errors.Validation(err.Error()))
		return
	}
	sess, err := h.app.Auth.Login(r.Context(), payload.Email, payload.Password, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		user.User
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, errors.Validation(err.Error()))
		return
	}
	created, err := h.app.Users.Register(r.Context(), &payload.User, payload.Password, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) systemStatus(w http.ResponseWriter, _ *http.Request) {
	var mgr *system.Manager
	if h.app != nil {
		mgr = h.app.Manager()
	}
	writeJSON(w, http.StatusOK, system.Snapshot(mgr))
}

func (h *handler) auditEntries(w http.ResponseWriter, r *http.Request) {
	if h.audits == nil {
		writeJSON(w, http.StatusOK, []audit.Entry{})
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	writeJSON(w, http.StatusOK, h.audits.ListLimit(limit))
}

func decodeJSON(body io.ReadCloser, dst any) error {
	defer body.Close()
	dec := json.NewDecoder(io.LimitReader(body, 1<<20))
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	body := map[string]any{"error": err.Error()}
	var appErr *errors.Error
	if stderrors.As(err, &appErr) && len(appErr.Issues) > 0 {
		body["issues"] = appErr.Issues
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
