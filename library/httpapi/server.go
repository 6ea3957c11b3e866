package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addcatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/payfine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removecatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/catalogitems"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/holdqueue"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberbalance"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberholds"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberloans"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Commands are the command handlers the API calls directly, the desk covers the rest.
type Commands struct {
	AddCatalogItem    shell.CommandHandler[addcatalogitem.Command]
	RemoveCatalogItem shell.CommandHandler[removecatalogitem.Command]
	RegisterMember    shell.CommandHandler[registermember.Command]
	PayFine           shell.CommandHandler[payfine.Command]
}

// Queries are the read models.
type Queries struct {
	CatalogItems  shell.QueryHandler[catalogitems.Query, catalogitems.CatalogItems]
	ItemHolds     shell.QueryHandler[holdqueue.Query, holdqueue.ItemHoldQueue]
	MemberHolds   shell.QueryHandler[memberholds.Query, memberholds.MemberHolds]
	MemberLoans   shell.QueryHandler[memberloans.Query, memberloans.MemberLoans]
	MemberBalance shell.QueryHandler[memberbalance.Query, memberbalance.Balance]
	OverdueLoans  shell.QueryHandler[overdueloans.Query, overdueloans.OverdueLoans]
}

// Server holds the collaborators of the route handlers.
type Server struct {
	desk     *desk.Desk
	carts    *cart.Store
	items    desk.ItemLookup
	commands Commands
	queries  Queries
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a Server.
func NewServer(circulationDesk *desk.Desk, carts *cart.Store, items desk.ItemLookup, commands Commands, queries Queries, opts ...Option) *Server {
	s := &Server{
		desk:     circulationDesk,
		carts:    carts,
		items:    items,
		commands: commands,
		queries:  queries,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Echo builds the echo instance with middlewares and all routes.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(s.logger)

	RegisterMiddlewares(e, s.logger)
	s.register(e)

	return e
}

func (s *Server) register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Public
	pub := e.Group("/api")
	pub.GET("/catalog", s.listCatalog)
	pub.GET("/items/:itemId/holds", s.itemHolds)

	// Admin
	admin := e.Group("/api/admin")
	admin.POST("/items", s.addCatalogItem)
	admin.DELETE("/items/:itemId", s.removeCatalogItem)
	admin.POST("/members", s.registerMember)
	admin.GET("/overdue", s.overdueLoans)

	// Member session
	member := e.Group("/api", requireSession())
	member.POST("/holdrequest", s.requestHold)
	member.POST("/cancelhold", s.cancelHold)
	member.POST("/fulfillhold", s.fulfillHold)
	member.POST("/checkout", s.checkout)
	member.POST("/profile/return", s.returnItems)
	member.POST("/profile/payfine", s.payFine)
	member.GET("/profile/holds", s.memberHolds)
	member.GET("/profile/loans", s.memberLoans)
	member.GET("/profile/balance", s.memberBalance)

	member.GET("/cart", s.listCart)
	member.POST("/cart", s.addToCart)
	member.DELETE("/cart/:itemId", s.removeFromCart)
	member.DELETE("/cart", s.clearCart)
}
