package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// POST /api/holdrequest
func (s *Server) requestHold(c echo.Context) error {
	var req itemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.desk.RequestHold(c.Request().Context(), sessionFrom(c), uuid.MustParse(req.ItemID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commandResponseFrom(result))
}

// POST /api/cancelhold
func (s *Server) cancelHold(c echo.Context) error {
	var req itemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.desk.CancelHold(c.Request().Context(), sessionFrom(c), uuid.MustParse(req.ItemID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commandResponseFrom(result))
}

// POST /api/fulfillhold
func (s *Server) fulfillHold(c echo.Context) error {
	var req itemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.desk.FulfillHold(c.Request().Context(), uuid.MustParse(req.ItemID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commandResponseFrom(result))
}

// POST /api/checkout
func (s *Server) checkout(c echo.Context) error {
	itemIDs, err := bindItemIDs(c)
	if err != nil {
		return err
	}

	batch, err := s.desk.Checkout(c.Request().Context(), sessionFrom(c), itemIDs)
	if err != nil {
		return err
	}

	return c.JSON(batchStatus(batch), batch)
}

// POST /api/profile/return
func (s *Server) returnItems(c echo.Context) error {
	itemIDs, err := bindItemIDs(c)
	if err != nil {
		return err
	}

	batch, err := s.desk.Return(c.Request().Context(), sessionFrom(c), itemIDs)
	if err != nil {
		return err
	}

	return c.JSON(batchStatus(batch), batch)
}

func bindItemIDs(c echo.Context) ([]uuid.UUID, error) {
	var req itemsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		itemIDs = append(itemIDs, uuid.MustParse(id))
	}

	return itemIDs, nil
}

// batchStatus is 409 when every item was rejected and 200 otherwise.
func batchStatus(batch desk.BatchResult) int {
	if batch.AllRejected() {
		return http.StatusConflict
	}

	return http.StatusOK
}

func commandResponseFrom(result shell.HandlerResult) commandResponse {
	response := commandResponse{Outcome: desk.OutcomeSuccess, Events: make([]string, 0, len(result.Events))}
	if result.Idempotent {
		response.Outcome = desk.OutcomeIdempotent
	}

	for _, event := range result.Events {
		response.Events = append(response.Events, event.EventType())

		switch e := event.(type) {
		case core.HoldRequested:
			response.HoldID = e.HoldID
			response.ItemID = e.ItemID
		case core.ItemAddedToCatalog:
			response.ItemID = e.ItemID
		}
	}

	return response
}
