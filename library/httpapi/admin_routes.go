package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addcatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/payfine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removecatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// POST /api/admin/items
func (s *Server) addCatalogItem(c echo.Context) error {
	var req catalogItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	itemID, err := idOrNew(req.ItemID)
	if err != nil {
		return err
	}

	command := addcatalogitem.BuildCommand(itemID, req.Title, core.ItemType(req.TypeName), s.now())
	result, err := s.commands.AddCatalogItem.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	response := commandResponseFrom(result)
	response.ItemID = itemID.String()

	return c.JSON(createdOrOK(result), response)
}

// DELETE /api/admin/items/:itemId
func (s *Server) removeCatalogItem(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	result, err := s.commands.RemoveCatalogItem.Handle(c.Request().Context(), removecatalogitem.BuildCommand(itemID, s.now()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commandResponseFrom(result))
}

// POST /api/admin/members
func (s *Server) registerMember(c echo.Context) error {
	var req memberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	memberID, err := idOrNew(req.MemberID)
	if err != nil {
		return err
	}

	command := registermember.BuildCommand(memberID, req.Name, req.GroupID, s.now())
	result, err := s.commands.RegisterMember.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(createdOrOK(result), echo.Map{
		"memberId": memberID.String(),
		"outcome":  commandResponseFrom(result).Outcome,
	})
}

// POST /api/profile/payfine
func (s *Server) payFine(c echo.Context) error {
	var req payFineRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	paymentID, err := idOrNew(req.PaymentID)
	if err != nil {
		return err
	}

	command := payfine.BuildCommand(paymentID, sessionFrom(c).MemberID, req.AmountCents, s.now())
	result, err := s.commands.PayFine.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"paymentId": paymentID.String(),
		"outcome":   commandResponseFrom(result).Outcome,
	})
}

// idOrNew parses id, an empty id gets a fresh one.
func idOrNew(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.NewV7()
	}

	return uuid.Parse(id)
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name).SetInternal(err)
	}

	return id, nil
}

func createdOrOK(result shell.HandlerResult) int {
	if result.Idempotent {
		return http.StatusOK
	}

	return http.StatusCreated
}
