package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"findyourseat/config"
	"findyourseat/monitoring"
	"findyourseat/services"
	"findyourseat/utils"
)

// App holds every service a command may need, built once per invocation.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	store utils.Store
	redis *redis.Client

	monitor  *monitoring.Monitor
	notifier services.Notifier

	gateway  *services.GatewayClient
	session  *services.SessionService
	layout   *services.SeatLayout
	bookings *services.BookingStore
	payments *services.PaymentService
	tickets  *services.TicketService
	invoices *services.InvoiceService
}

func newApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		layout: services.DefaultSeatLayout(),
	}

	if err := a.openStore(); err != nil {
		return nil, err
	}

	if cfg.EnableMetrics {
		a.monitor = monitoring.NewMonitor()
	}

	// Initialize PubNub
	a.notifier = services.NopNotifier{}
	if cfg.PubNubPublishKey != "" {
		a.notifier = services.NewPubNubNotifier(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubSecretKey, cfg.PubNubUserID, logger)
	}

	// Initialize services
	a.gateway = services.NewGatewayClient(cfg.BackendURL, nil, logger, a.monitor)
	a.session = services.NewSessionService(a.gateway, a.store, logger)
	a.bookings = services.NewBookingStore(a.store)
	a.payments = services.NewPaymentService(a.bookings, a.session, a.notifier, a.monitor, logger)
	a.tickets = services.NewTicketService(a.bookings, services.NewPDFRenderer(), a.monitor, logger)
	a.invoices = services.NewInvoiceService(a.gateway, a.session, a.bookings, logger)

	return a, nil
}

func (a *App) openStore() error {
	switch strings.ToLower(a.cfg.StateBackend) {
	case "memory":
		a.store = utils.NewMemoryStore()
	case "file", "":
		fs := utils.NewFileStore(a.cfg.StateFile)
		a.logger.Debug("using state file", "path", fs.Path())
		a.store = fs
	case "redis":
		client, err := utils.NewRedisClient(a.cfg.RedisURL, a.cfg.RedisPassword, a.cfg.RedisDB)
		if err != nil {
			return err
		}
		a.redis = client
		a.store = utils.NewRedisStore(client, a.cfg.StateKeyPrefix)
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q (want file, redis or memory)", a.cfg.StateBackend)
	}

	a.logger.Debug("state backend ready", "backend", a.cfg.StateBackend)
	return nil
}

// NewSelection starts an empty selection for movieID.
func (a *App) NewSelection(movieID string) *services.SeatSelection {
	return services.NewSeatSelection(movieID, a.layout, a.gateway, a.session, a.bookings,
		services.WithNotifier(a.notifier),
		services.WithMonitor(a.monitor),
		services.WithLogger(a.logger),
	)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Health checks that durable state is reachable: backends that can be pinged
// are pinged, the rest must answer a read.
func (a *App) Health(ctx context.Context) error {
	if p, ok := a.store.(pinger); ok {
		return p.Ping(ctx)
	}
	_, err := a.store.Get(ctx, services.KeyUserID)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
