package httpapi_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
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
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

type apiClient struct {
	t    *testing.T
	echo *echo.Echo
}

func givenAPI(t *testing.T) apiClient {
	t.Helper()

	es := testutil.GivenEmptyEventStore()
	policy := core.DefaultLendingPolicy()
	now := func() time.Time { return testutil.FixedClock }
	carts := cart.NewStore(cart.NewMemorySessionStore())
	items := desk.NewEventStoreItemLookup(es)

	circulationDesk := desk.NewDesk(desk.Handlers{
		Checkout:    checkoutitem.NewCommandHandler(es),
		Return:      returnitem.NewCommandHandler(es),
		RequestHold: requesthold.NewCommandHandler(es),
		CancelHold:  cancelhold.NewCommandHandler(es),
		FulfillHold: fulfillhold.NewCommandHandler(es),
	}, carts, items, desk.WithClock(now))

	commands := httpapi.Commands{
		AddCatalogItem:    addcatalogitem.NewCommandHandler(es),
		RemoveCatalogItem: removecatalogitem.NewCommandHandler(es),
		RegisterMember:    registermember.NewCommandHandler(es),
		PayFine:           payfine.NewCommandHandler(es),
	}

	queries := httpapi.Queries{
		CatalogItems:  catalogitems.NewQueryHandler(es),
		ItemHolds:     holdqueue.NewQueryHandler(es),
		MemberHolds:   memberholds.NewQueryHandler(es),
		MemberLoans:   memberloans.NewQueryHandler(es),
		MemberBalance: memberbalance.NewQueryHandler(es),
		OverdueLoans:  overdueloans.NewQueryHandler(es, policy),
	}

	server := httpapi.NewServer(circulationDesk, carts, items, commands, queries, httpapi.WithClock(now))

	return apiClient{t: t, echo: server.Echo()}
}

func (a apiClient) do(method string, path string, memberID string, body any) (int, map[string]any) {
	a.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = jsoniter.Marshal(body)
		require.NoError(a.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if memberID != "" {
		req.Header.Set(httpapi.HeaderMemberID, memberID)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	response := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(a.t, jsoniter.Unmarshal(rec.Body.Bytes(), &response), rec.Body.String())
	}

	return rec.Code, response
}

func (a apiClient) givenItem(title string) string {
	a.t.Helper()

	status, body := a.do(http.MethodPost, "/api/admin/items", "", echo.Map{"title": title, "typeName": "Book"})
	require.Equal(a.t, http.StatusCreated, status, body)

	return body["itemId"].(string)
}

func (a apiClient) givenMember(name string) string {
	a.t.Helper()

	status, body := a.do(http.MethodPost, "/api/admin/members", "", echo.Map{"name": name})
	require.Equal(a.t, http.StatusCreated, status, body)

	return body["memberId"].(string)
}

func Test_MemberRoutes_RequireASession(t *testing.T) {
	api := givenAPI(t)

	for _, path := range []string{"/api/checkout", "/api/holdrequest", "/api/profile/return"} {
		status, body := api.do(http.MethodPost, path, "", echo.Map{"itemIds": []string{uuid.NewString()}})

		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "unauthorized", body["message"])
	}

	status, _ := api.do(http.MethodGet, "/api/cart", "not-a-uuid", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func Test_CartCheckoutAndReturn(t *testing.T) {
	// setup
	api := givenAPI(t)
	itemID := api.givenItem("Dune")
	memberID := api.givenMember("Ada")

	// add to cart twice
	status, body := api.do(http.MethodPost, "/api/cart", memberID, echo.Map{"itemId": itemID})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = api.do(http.MethodPost, "/api/cart", memberID, echo.Map{"itemId": itemID})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(1), body["count"])

	// checkout
	status, body = api.do(http.MethodPost, "/api/checkout", memberID, echo.Map{"itemIds": []string{itemID}})
	require.Equal(t, http.StatusOK, status, body)

	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, desk.OutcomeSuccess, first["outcome"])
	assert.Equal(t, testutil.FixedClock.Add(14*24*time.Hour).Format(time.RFC3339), first["dueDate"])

	status, body = api.do(http.MethodGet, "/api/cart", memberID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])

	// second checkout of the same item
	status, body = api.do(http.MethodPost, "/api/checkout", memberID, echo.Map{"itemIds": []string{itemID}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "item is checked out", body["items"].([]any)[0].(map[string]any)["reason"])

	// return on time
	status, body = api.do(http.MethodPost, "/api/profile/return", memberID, echo.Map{"itemIds": []string{itemID}})
	require.Equal(t, http.StatusOK, status, body)
	_, hasFine := body["items"].([]any)[0].(map[string]any)["fineAccruedCents"]
	assert.False(t, hasFine)
}

func Test_Checkout_PartialSuccess(t *testing.T) {
	api := givenAPI(t)
	itemID := api.givenItem("Dune")
	memberID := api.givenMember("Ada")

	status, body := api.do(http.MethodPost, "/api/checkout", memberID, echo.Map{"itemIds": []string{itemID, uuid.NewString()}})

	require.Equal(t, http.StatusOK, status, body)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, desk.OutcomeSuccess, items[0].(map[string]any)["outcome"])
	assert.Equal(t, desk.OutcomeRejected, items[1].(map[string]any)["outcome"])
	assert.Equal(t, "item not in catalog", items[1].(map[string]any)["reason"])
}

func Test_HoldRoutes(t *testing.T) {
	// setup
	api := givenAPI(t)
	itemID := api.givenItem("Dune")
	borrowerID := api.givenMember("Ada")
	waitingID := api.givenMember("Grace")

	// hold on an available item
	status, body := api.do(http.MethodPost, "/api/holdrequest", waitingID, echo.Map{"itemId": itemID})
	require.Equal(t, http.StatusConflict, status, body)
	assert.Equal(t, "item is available", body["message"])

	status, _ = api.do(http.MethodPost, "/api/checkout", borrowerID, echo.Map{"itemIds": []string{itemID}})
	require.Equal(t, http.StatusOK, status)

	// hold on a checked out item, then a duplicate
	status, body = api.do(http.MethodPost, "/api/holdrequest", waitingID, echo.Map{"itemId": itemID})
	require.Equal(t, http.StatusOK, status, body)
	assert.NotEmpty(t, body["holdId"])

	status, _ = api.do(http.MethodPost, "/api/holdrequest", waitingID, echo.Map{"itemId": itemID})
	assert.Equal(t, http.StatusConflict, status)

	// queue
	status, body = api.do(http.MethodGet, "/api/items/"+itemID+"/holds", "", nil)
	require.Equal(t, http.StatusOK, status, body)
	holds := body["holds"].([]any)
	require.Len(t, holds, 1)
	assert.Equal(t, true, holds[0].(map[string]any)["nextInLine"])

	// return reserves the item for the waiting member
	status, _ = api.do(http.MethodPost, "/api/profile/return", borrowerID, echo.Map{"itemIds": []string{itemID}})
	require.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodPost, "/api/checkout", borrowerID, echo.Map{"itemIds": []string{itemID}})
	assert.Equal(t, http.StatusConflict, status, body)

	status, body = api.do(http.MethodPost, "/api/checkout", waitingID, echo.Map{"itemIds": []string{itemID}})
	assert.Equal(t, http.StatusOK, status, body)
}

func Test_CancelHold_WithoutHold_IsNotFound(t *testing.T) {
	api := givenAPI(t)
	itemID := api.givenItem("Dune")
	memberID := api.givenMember("Ada")

	status, body := api.do(http.MethodPost, "/api/cancelhold", memberID, echo.Map{"itemId": itemID})

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "no hold for this member", body["message"])
}

func Test_ValidationErrors(t *testing.T) {
	api := givenAPI(t)
	memberID := api.givenMember("Ada")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "empty item list", method: http.MethodPost, path: "/api/checkout", body: echo.Map{"itemIds": []string{}}},
		{name: "item id is not a uuid", method: http.MethodPost, path: "/api/holdrequest", body: echo.Map{"itemId": "42"}},
		{name: "negative payment", method: http.MethodPost, path: "/api/profile/payfine", body: echo.Map{"amountCents": -5}},
		{name: "unknown cart category", method: http.MethodPost, path: "/api/cart", body: echo.Map{"itemId": uuid.NewString(), "category": "Wishlist"}},
		{name: "unknown sort order", method: http.MethodGet, path: "/api/catalog?sort=year"},
		{name: "page is not a number", method: http.MethodGet, path: "/api/catalog?page=two"},
		{name: "item path id", method: http.MethodGet, path: "/api/items/nope/holds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := api.do(tc.method, tc.path, memberID, tc.body)

			assert.Equal(t, http.StatusBadRequest, status, body)
		})
	}
}

func Test_Catalog_And_AdminRoutes(t *testing.T) {
	// setup
	api := givenAPI(t)
	duneID := api.givenItem("Dune")
	api.givenItem("Emma")

	// act
	status, body := api.do(http.MethodGet, "/api/catalog?sort=-title&pageSize=1", "", nil)

	// assert
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(2), body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Emma", items[0].(map[string]any)["title"])

	status, _ = api.do(http.MethodDelete, "/api/admin/items/"+duneID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodGet, "/api/items/"+duneID+"/holds", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(http.MethodDelete, "/api/admin/items/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, status, body)
}

func Test_Catalog_WithHugePageNumber_ReturnsAnEmptyPage(t *testing.T) {
	api := givenAPI(t)
	api.givenItem("Dune")

	status, body := api.do(http.MethodGet, "/api/catalog?page=92233720368547760&pageSize=100", "", nil)

	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, body["items"])
	assert.Equal(t, float64(1), body["total"])
}

func Test_ProfileRoutes(t *testing.T) {
	api := givenAPI(t)
	itemID := api.givenItem("Dune")
	memberID := api.givenMember("Ada")

	status, _ := api.do(http.MethodPost, "/api/checkout", memberID, echo.Map{"itemIds": []string{itemID}})
	require.Equal(t, http.StatusOK, status)

	status, body := api.do(http.MethodGet, "/api/profile/loans", memberID, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(1), body["openCount"])

	status, body = api.do(http.MethodGet, "/api/profile/balance", memberID, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(0), body["outstandingCents"])

	status, body = api.do(http.MethodPost, "/api/profile/payfine", memberID, echo.Map{"amountCents": 100})
	assert.Equal(t, http.StatusConflict, status, body)
	assert.Equal(t, "no outstanding balance", body["message"])

	status, body = api.do(http.MethodGet, "/api/profile/holds", memberID, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, body["holds"])

	status, body = api.do(http.MethodGet, "/api/admin/overdue", "", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, body["loans"])

	status, _ = api.do(http.MethodGet, "/api/profile/balance", uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}
