package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/catalogitems"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/holdqueue"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberbalance"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberholds"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/memberloans"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

type catalogParams struct {
	TypeName string `validate:"omitempty,oneof=Book Media Device"`
	Status   string `validate:"omitempty,oneof=Available CheckedOut"`
	Text     string `validate:"max=200"`
	Sort     string `validate:"omitempty,oneof=title -title type"`
	Page     int    `validate:"gte=0"`
	PageSize int    `validate:"gte=0,lte=100"`
}

// GET /api/catalog?type=&status=&q=&sort=&page=&pageSize=
func (s *Server) listCatalog(c echo.Context) error {
	var params catalogParams

	err := echo.QueryParamsBinder(c).
		String("type", &params.TypeName).
		String("status", &params.Status).
		String("q", &params.Text).
		String("sort", &params.Sort).
		Int("page", &params.Page).
		Int("pageSize", &params.PageSize).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters").SetInternal(err)
	}

	if err = c.Validate(params); err != nil {
		return err
	}

	query := catalogitems.BuildQuery(
		core.ItemType(params.TypeName),
		core.ItemStatus(params.Status),
		params.Text,
		params.Sort,
		params.Page,
		params.PageSize,
	)

	result, err := s.queries.CatalogItems.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GET /api/items/:itemId/holds
func (s *Server) itemHolds(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	result, err := s.queries.ItemHolds.Handle(c.Request().Context(), holdqueue.BuildQuery(itemID))
	if err != nil {
		return err
	}

	if !result.InCatalog {
		return echo.NewHTTPError(http.StatusNotFound, "item not in catalog")
	}

	return c.JSON(http.StatusOK, result)
}

// GET /api/profile/holds
func (s *Server) memberHolds(c echo.Context) error {
	result, err := s.queries.MemberHolds.Handle(c.Request().Context(), memberholds.BuildQuery(sessionFrom(c).MemberID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GET /api/profile/loans
func (s *Server) memberLoans(c echo.Context) error {
	query := memberloans.BuildQuery(sessionFrom(c).MemberID, s.now())

	result, err := s.queries.MemberLoans.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GET /api/profile/balance
func (s *Server) memberBalance(c echo.Context) error {
	result, err := s.queries.MemberBalance.Handle(c.Request().Context(), memberbalance.BuildQuery(sessionFrom(c).MemberID))
	if err != nil {
		return err
	}

	if !result.Registered {
		return echo.NewHTTPError(http.StatusNotFound, "member not registered")
	}

	return c.JSON(http.StatusOK, result)
}

// GET /api/admin/overdue
func (s *Server) overdueLoans(c echo.Context) error {
	result, err := s.queries.OverdueLoans.Handle(c.Request().Context(), overdueloans.BuildQuery(s.now()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
