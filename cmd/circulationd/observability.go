package main

import (
	"log/slog"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
)

// observability carries the optional collectors into the event store and the handler wrappers.
type observability struct {
	logger           *slog.Logger
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
}

func (o observability) eventStoreOptions(table string) []postgresengine.Option {
	options := []postgresengine.Option{
		postgresengine.WithTableName(table),
		postgresengine.WithLogger(o.logger),
	}

	if o.contextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(o.contextualLogger))
	}

	if o.metrics != nil {
		options = append(options, postgresengine.WithMetrics(o.metrics))
	}

	if o.tracing != nil {
		options = append(options, postgresengine.WithTracing(o.tracing))
	}

	return options
}

func wrapCommand[C shell.Command](o observability, handler shell.CommandHandler[C]) (shell.CommandHandler[C], error) {
	opts := []observable.CommandOption[C]{observable.WithCommandLogging[C](o.logger)}

	if o.contextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](o.contextualLogger))
	}

	if o.metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](o.metrics))
	}

	if o.tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](o.tracing))
	}

	wrapper, err := observable.NewCommandWrapper(handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func wrapQuery[Q shell.Query, R shell.QueryResult](o observability, handler shell.QueryHandler[Q, R]) (shell.QueryHandler[Q, R], error) {
	opts := []observable.QueryOption[Q, R]{observable.WithQueryLogging[Q, R](o.logger)}

	if o.contextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](o.contextualLogger))
	}

	if o.metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](o.metrics))
	}

	if o.tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](o.tracing))
	}

	wrapper, err := observable.NewQueryWrapper(handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func wrapDeskHandlers(o observability, h desk.Handlers) (desk.Handlers, error) {
	var (
		wrapped desk.Handlers
		err     error
	)

	if wrapped.Checkout, err = wrapCommand(o, h.Checkout); err != nil {
		return desk.Handlers{}, err
	}

	if wrapped.Return, err = wrapCommand(o, h.Return); err != nil {
		return desk.Handlers{}, err
	}

	if wrapped.RequestHold, err = wrapCommand(o, h.RequestHold); err != nil {
		return desk.Handlers{}, err
	}

	if wrapped.CancelHold, err = wrapCommand(o, h.CancelHold); err != nil {
		return desk.Handlers{}, err
	}

	if wrapped.FulfillHold, err = wrapCommand(o, h.FulfillHold); err != nil {
		return desk.Handlers{}, err
	}

	return wrapped, nil
}

func wrapAPICommands(o observability, c httpapi.Commands) (httpapi.Commands, error) {
	var (
		wrapped httpapi.Commands
		err     error
	)

	if wrapped.AddCatalogItem, err = wrapCommand(o, c.AddCatalogItem); err != nil {
		return httpapi.Commands{}, err
	}

	if wrapped.RemoveCatalogItem, err = wrapCommand(o, c.RemoveCatalogItem); err != nil {
		return httpapi.Commands{}, err
	}

	if wrapped.RegisterMember, err = wrapCommand(o, c.RegisterMember); err != nil {
		return httpapi.Commands{}, err
	}

	if wrapped.PayFine, err = wrapCommand(o, c.PayFine); err != nil {
		return httpapi.Commands{}, err
	}

	return wrapped, nil
}

func wrapAPIQueries(o observability, q httpapi.Queries) (httpapi.Queries, error) {
	var (
		wrapped httpapi.Queries
		err     error
	)

	if wrapped.CatalogItems, err = wrapQuery(o, q.CatalogItems); err != nil {
		return httpapi.Queries{}, err
	}

	if wrapped.ItemHolds, err = wrapQuery(o, q.ItemHolds); err != nil {
		return httpapi.Queries{}, err
	}

	if wrapped.MemberHolds, err = wrapQuery(o, q.MemberHolds); err != nil {
		return httpapi.Queries{}, err
	}

	if wrapped.MemberLoans, err = wrapQuery(o, q.MemberLoans); err != nil {
		return httpapi.Queries{}, err
	}

	if wrapped.MemberBalance, err = wrapQuery(o, q.MemberBalance); err != nil {
		return httpapi.Queries{}, err
	}

	if wrapped.OverdueLoans, err = wrapQuery(o, q.OverdueLoans); err != nil {
		return httpapi.Queries{}, err
	}

	return wrapped, nil
}
