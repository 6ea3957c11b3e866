package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

type cartResponse struct {
	Entries cart.Entries `json:"entries"`
	Count   int          `json:"count"`
}

// GET /api/cart
func (s *Server) listCart(c echo.Context) error {
	return s.respondWithCart(c, http.StatusOK)
}

// POST /api/cart
func (s *Server) addToCart(c echo.Context) error {
	var req cartEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	item, err := s.items.Lookup(ctx, uuid.MustParse(req.ItemID).String())
	if err != nil {
		return err
	}

	if !item.InCatalog {
		return core.NewNotFound("AddingToCartFailed", "item not in catalog")
	}

	category := cart.Category(req.Category)
	if category == "" {
		category = cart.CategoryInCart
	}

	added, err := s.carts.Add(ctx, sessionFrom(c).SessionID, cart.Entry{
		ItemID:   item.ItemID,
		Title:    item.Title,
		TypeName: item.TypeName,
		Status:   item.Status,
		Category: category,
	})
	if err != nil {
		return err
	}

	if !added {
		return s.respondWithCart(c, http.StatusOK)
	}

	return s.respondWithCart(c, http.StatusCreated)
}

// DELETE /api/cart/:itemId
func (s *Server) removeFromCart(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	if err = s.carts.Remove(c.Request().Context(), sessionFrom(c).SessionID, itemID.String()); err != nil {
		return err
	}

	return s.respondWithCart(c, http.StatusOK)
}

// DELETE /api/cart
func (s *Server) clearCart(c echo.Context) error {
	if err := s.carts.Clear(c.Request().Context(), sessionFrom(c).SessionID); err != nil {
		return err
	}

	return s.respondWithCart(c, http.StatusOK)
}

func (s *Server) respondWithCart(c echo.Context, status int) error {
	entries, err := s.carts.Entries(c.Request().Context(), sessionFrom(c).SessionID)
	if err != nil {
		return err
	}

	if entries == nil {
		entries = cart.Entries{}
	}

	return c.JSON(status, cartResponse{Entries: entries, Count: len(entries)})
}
