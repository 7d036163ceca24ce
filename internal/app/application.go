package app

import (
	"time"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/domain/agent"
	"github.com/roamdine/platform/internal/app/domain/booking"
	"github.com/roamdine/platform/internal/app/domain/file"
	"github.com/roamdine/platform/internal/app/domain/inventory"
	"github.com/roamdine/platform/internal/app/domain/listing"
	"github.com/roamdine/platform/internal/app/domain/message"
	"github.com/roamdine/platform/internal/app/domain/notification"
	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/domain/payment"
	searchdoc "github.com/roamdine/platform/internal/app/domain/search"
	"github.com/roamdine/platform/internal/app/domain/session"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/domain/user"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/services/agents"
	"github.com/roamdine/platform/internal/app/services/auth"
	"github.com/roamdine/platform/internal/app/services/bookings"
	"github.com/roamdine/platform/internal/app/services/files"
	inventorysvc "github.com/roamdine/platform/internal/app/services/inventory"
	"github.com/roamdine/platform/internal/app/services/listings"
	messagingsvc "github.com/roamdine/platform/internal/app/services/messaging"
	"github.com/roamdine/platform/internal/app/services/notifications"
	"github.com/roamdine/platform/internal/app/services/orders"
	"github.com/roamdine/platform/internal/app/services/payments"
	searchsvc "github.com/roamdine/platform/internal/app/services/search"
	"github.com/roamdine/platform/internal/app/services/tenants"
	"github.com/roamdine/platform/internal/app/services/users"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/app/storage/memory"
	"github.com/roamdine/platform/internal/app/system"
	"github.com/roamdine/platform/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Tenants       storage.Repository[*tenant.Tenant]
	Users         storage.Repository[*user.User]
	Sessions      storage.Repository[*session.Session]
	Listings      storage.Repository[*listing.Listing]
	Bookings      storage.Repository[*booking.Booking]
	Orders        storage.Repository[*order.Order]
	Payments      storage.Repository[*payment.Payment]
	Inventory     storage.Repository[*inventory.Item]
	Files         storage.Repository[*file.File]
	Messages      storage.Repository[*message.Message]
	Notifications storage.Repository[*notification.Notification]
	Documents     storage.Repository[*searchdoc.Document]
	Agents        storage.Repository[*agent.Agent]

	Directory     storage.UserDirectory
	OrderStatuses storage.OrderStatusUpdater
}

// Options configures the application beyond its stores.
type Options struct {
	Providers   providers.Set
	Audits      audit.Logger
	Limiter     ratelimit.Limiter
	Broadcaster notifications.Broadcaster

	AuthSecret      string
	SessionTTL      time.Duration
	OrderStaleAfter time.Duration
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Tenants       *tenants.Service
	Users         *users.Service
	Auth          *auth.Service
	Listings      *listings.Service
	Bookings      *bookings.Service
	Orders        *orders.Service
	Payments      *payments.Service
	Inventory     *inventorysvc.Service
	Files         *files.Service
	Messaging     *messagingsvc.Service
	Notifications *notifications.Service
	Search        *searchsvc.Service
	Agents        *agents.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Tenants == nil {
		stores.Tenants = mem.Tenants
	}
	if stores.Users == nil {
		stores.Users = mem.Users
	}
	if stores.Sessions == nil {
		stores.Sessions = mem.Sessions
	}
	if stores.Listings == nil {
		stores.Listings = mem.Listings
	}
	if stores.Bookings == nil {
		stores.Bookings = mem.Bookings
	}
	if stores.Orders == nil {
		stores.Orders = mem.Orders
	}
	if stores.Payments == nil {
		stores.Payments = mem.Payments
	}
	if stores.Inventory == nil {
		stores.Inventory = mem.Inventory
	}
	if stores.Files == nil {
		stores.Files = mem.Files
	}
	if stores.Messages == nil {
		stores.Messages = mem.Messages
	}
	if stores.Notifications == nil {
		stores.Notifications = mem.Notifications
	}
	if stores.Documents == nil {
		stores.Documents = mem.Documents
	}
	if stores.Agents == nil {
		stores.Agents = mem.Agents
	}
	if stores.Directory == nil {
		stores.Directory = mem
	}
	if stores.OrderStatuses == nil {
		stores.OrderStatuses = mem
	}

	set := opts.Providers
	if set.Payment == nil {
		log.Warn("payment provider not supplied; using mock")
		set.Payment = providers.NewMockPayment()
	}
	if set.Search == nil {
		set.Search = providers.NewMockSearch()
	}
	if set.Messaging == nil {
		set.Messaging = providers.NewMockMessaging()
	}

	audits := opts.Audits
	if audits == nil {
		audits = audit.NewTrail(0, nil, log)
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.NewFixedWindow(0, 0)
	}
	secret := opts.AuthSecret
	if secret == "" {
		secret = "dev-insecure-secret"
		log.Warn("auth secret not configured; using development default")
	}

	authService, err := auth.New(stores.Directory, stores.Sessions, secret, opts.SessionTTL, audits, limiter, log)
	if err != nil {
		return nil, err
	}

	application := &Application{
		manager:       system.NewManager(log),
		log:           log,
		Tenants:       tenants.New(stores.Tenants, audits, limiter, log),
		Users:         users.New(stores.Users, audits, limiter, log),
		Auth:          authService,
		Listings:      listings.New(stores.Listings, audits, limiter, set.Search, log),
		Bookings:      bookings.New(stores.Bookings, audits, limiter, set.Messaging, log),
		Orders:        orders.New(stores.Orders, stores.OrderStatuses, set.Payment, audits, limiter, log),
		Payments:      payments.New(stores.Payments, audits, limiter, log),
		Inventory:     inventorysvc.New(stores.Inventory, audits, limiter, log),
		Files:         files.New(stores.Files, audits, limiter, log),
		Messaging:     messagingsvc.New(stores.Messages, audits, limiter, set.Messaging, log),
		Notifications: notifications.New(stores.Notifications, audits, limiter, opts.Broadcaster, log),
		Search:        searchsvc.New(stores.Documents, audits, limiter, set.Search, log),
		Agents:        agents.New(stores.Agents, audits, limiter, log),
	}

	reconciler := orders.NewReconciler(stores.Orders, stores.OrderStatuses, log)
	if opts.OrderStaleAfter > 0 {
		reconciler.WithStaleAfter(opts.OrderStaleAfter)
	}
	application.manager.Register(reconciler)

	return application, nil
}

// Manager exposes the lifecycle manager for startup and shutdown.
func (a *Application) Manager() *system.Manager { return a.manager }
