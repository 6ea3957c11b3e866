package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addcatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelhold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/checkoutitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/fulfillhold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/payfine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removecatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/requesthold"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/catalogitems"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/holdqueue"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberbalance"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberholds"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberloans"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/library/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/library/notify"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

// app owns everything that has to be closed on shutdown.
type app struct {
	server  *httpapi.Server
	closers []func(ctx context.Context) error
	logger  *slog.Logger
}

func (a *app) onClose(closer func(ctx context.Context) error) {
	a.closers = append(a.closers, closer)
}

// close runs the closers in reverse order.
func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Error("closing resource failed", "error", err.Error())
		}
	}
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (a *app, err error) {
	a = &app{logger: logger}
	defer func() {
		if err != nil {
			a.close(context.Background())
		}
	}()

	obs, err := a.observability(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	eventStore, err := a.eventStore(ctx, cfg, obs)
	if err != nil {
		return nil, err
	}

	sessions, err := a.sessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := a.publisher(cfg, logger)
	if err != nil {
		return nil, err
	}

	policy := cfg.LendingPolicy()

	handlers, err := wrapDeskHandlers(obs, desk.Handlers{
		Checkout:    checkoutitem.NewCommandHandler(eventStore, checkoutitem.WithLendingPolicy(policy)),
		Return:      returnitem.NewCommandHandler(eventStore, returnitem.WithLendingPolicy(policy)),
		RequestHold: requesthold.NewCommandHandler(eventStore),
		CancelHold:  cancelhold.NewCommandHandler(eventStore),
		FulfillHold: fulfillhold.NewCommandHandler(eventStore),
	})
	if err != nil {
		return nil, err
	}

	commands, err := wrapAPICommands(obs, httpapi.Commands{
		AddCatalogItem:    addcatalogitem.NewCommandHandler(eventStore),
		RemoveCatalogItem: removecatalogitem.NewCommandHandler(eventStore),
		RegisterMember:    registermember.NewCommandHandler(eventStore),
		PayFine:           payfine.NewCommandHandler(eventStore),
	})
	if err != nil {
		return nil, err
	}

	queries, err := wrapAPIQueries(obs, httpapi.Queries{
		CatalogItems:  catalogitems.NewQueryHandler(eventStore),
		ItemHolds:     holdqueue.NewQueryHandler(eventStore),
		MemberHolds:   memberholds.NewQueryHandler(eventStore),
		MemberLoans:   memberloans.NewQueryHandler(eventStore),
		MemberBalance: memberbalance.NewQueryHandler(eventStore),
		OverdueLoans:  overdueloans.NewQueryHandler(eventStore, policy),
	})
	if err != nil {
		return nil, err
	}

	carts := cart.NewStore(sessions, cart.WithPublisher(publisher), cart.WithLogger(logger))
	items := desk.NewEventStoreItemLookup(eventStore)

	circulationDesk := desk.NewDesk(handlers, carts, items, desk.WithPublisher(publisher), desk.WithLogger(logger))
	a.server = httpapi.NewServer(circulationDesk, carts, items, commands, queries, httpapi.WithLogger(logger))

	return a, nil
}

func (a *app) observability(ctx context.Context, cfg config.Config, logger *slog.Logger) (observability, error) {
	obs := observability{logger: logger}
	if !cfg.OTelEnabled {
		return obs, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg.OTelEndpoint, serviceName, serviceVersion)
	if err != nil {
		return observability{}, err
	}
	a.onClose(providers.Shutdown)

	obs.metrics = oteladapters.NewMetricsCollector(otel.Meter(serviceName))
	obs.tracing = oteladapters.NewTracingCollector(otel.Tracer(serviceName))
	obs.contextualLogger = oteladapters.NewSlogBridgeLogger(serviceName)

	return obs, nil
}

func (a *app) eventStore(ctx context.Context, cfg config.Config, obs observability) (shell.EventStore, error) {
	if cfg.EventStoreBackend == config.BackendMemory {
		return memengine.NewEventStore(memengine.WithLogger(obs.logger)), nil
	}

	options := obs.eventStoreOptions(cfg.EventsTable)

	var (
		es  *postgresengine.EventStore
		err error
	)

	switch cfg.PostgresAdapter {
	case config.AdapterSQLDB:
		db, openErr := config.OpenSQLDB(ctx, cfg.PostgresDSN)
		if openErr != nil {
			return nil, openErr
		}
		a.onClose(func(context.Context) error { return db.Close() })

		es, err = postgresengine.NewEventStoreFromSQLDB(db, options...)

	case config.AdapterSQLX:
		db, openErr := config.OpenSQLX(ctx, cfg.PostgresDSN)
		if openErr != nil {
			return nil, openErr
		}
		a.onClose(func(context.Context) error { return db.Close() })

		es, err = postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		primary, openErr := a.pgxPool(ctx, cfg.PostgresDSN)
		if openErr != nil {
			return nil, openErr
		}

		var replica *pgxpool.Pool
		if cfg.PostgresReplicaDSN != "" {
			if replica, openErr = a.pgxPool(ctx, cfg.PostgresReplicaDSN); openErr != nil {
				return nil, openErr
			}
		}

		es, err = postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)
	}

	if err != nil {
		return nil, err
	}

	if cfg.PostgresMigrate {
		if err = es.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	return es, nil
}

func (a *app) pgxPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := config.NewPGXPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	a.onClose(func(context.Context) error {
		pool.Close()
		return nil
	})

	return pool, nil
}

func (a *app) sessionStore(ctx context.Context, cfg config.Config) (cart.SessionStore, error) {
	if cfg.CartStore == config.BackendMemory {
		return cart.NewMemorySessionStore(), nil
	}

	db, err := config.OpenSQLX(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) error { return db.Close() })

	return newPostgresSessionStore(ctx, db, cfg.PostgresMigrate)
}

func newPostgresSessionStore(ctx context.Context, db *sqlx.DB, migrate bool) (*cart.PostgresSessionStore, error) {
	store := cart.NewPostgresSessionStore(db)
	if !migrate {
		return store, nil
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (a *app) publisher(cfg config.Config, logger *slog.Logger) (notify.Publisher, error) {
	if cfg.Notifier != config.NotifierAMQP {
		return notify.NewLogPublisher(logger), nil
	}

	publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) error { return publisher.Close() })

	return publisher, nil
}
