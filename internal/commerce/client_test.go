package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umrah-storefront/internal/domain"
)

type recordedCall struct {
	Query     string
	Variables map[string]interface{}
}

// fakeStorefront answers by matching a substring of the query document.
func fakeStorefront(t *testing.T, responses map[string]string) (*httptest.Server, *[]recordedCall) {
	t.Helper()
	var calls []recordedCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "public-token", r.Header.Get(tokenHeader))
		body, _ := io.ReadAll(r.Body)
		var req recordedCall
		assert.NoError(t, json.Unmarshal(body, &req))
		calls = append(calls, req)
		for marker, resp := range responses {
			if strings.Contains(req.Query, marker) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(resp))
				return
			}
		}
		http.Error(w, `{"errors":[{"message":"unexpected operation"}]}`, http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Config{Endpoint: url, AccessToken: "public-token"}, nil)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{AccessToken: "x"}, nil)
	require.Error(t, err)
	_, err = New(Config{Endpoint: "http://example.com"}, nil)
	require.Error(t, err)
}

func TestListProducts_ReshapesMetafields(t *testing.T) {
	srv, calls := fakeStorefront(t, map[string]string{
		"query ListProducts": `{"data":{"products":{"pageInfo":{"hasNextPage":true,"endCursor":"c1"},"edges":[{"node":{
			"id":"gid://shopify/Product/1","handle":"ihram-set","title":"Ihram Set",
			"priceRange":{"minVariantPrice":{"amount":"25.0","currencyCode":"USD"}},
			"images":{"edges":[{"node":{"url":"https://cdn.example.com/ihram.jpg","altText":"ihram"}}]},
			"variants":{"edges":[{"node":{"id":"gid://shopify/ProductVariant/11","title":"Default","availableForSale":true,"price":{"amount":"25.0","currencyCode":"USD"}}}]},
			"metafields":[{"key":"category","value":"Clothing"},{"key":"rating","value":"4.5"},null,{"key":"features","value":"Cotton, Two pieces"}]
		}}]}}}`,
	})
	c := newTestClient(t, srv.URL)

	page, err := c.ListProducts(context.Background(), 12, "")
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "c1", page.EndCursor)

	p := page.Products[0]
	assert.Equal(t, "ihram-set", p.Handle)
	assert.Equal(t, "25", p.Price.Amount.String())
	assert.Equal(t, "Clothing", p.Category)
	assert.Equal(t, "4.5", p.Rating.String())
	assert.Equal(t, []string{"Cotton", "Two pieces"}, p.Features)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "gid://shopify/ProductVariant/11", p.Variants[0].ID)

	require.Len(t, *calls, 1)
	assert.EqualValues(t, 12, (*calls)[0].Variables["first"])
	_, hasAfter := (*calls)[0].Variables["after"]
	assert.False(t, hasAfter)
}

func TestProductByHandle_NotFound(t *testing.T) {
	srv, _ := fakeStorefront(t, map[string]string{
		"query ProductByHandle": `{"data":{"product":null}}`,
	})
	c := newTestClient(t, srv.URL)

	_, err := c.ProductByHandle(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseFeatures(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseFeatures(`["a"," b "]`))
	assert.Equal(t, []string{"a", "b"}, ParseFeatures("a, b"))
	assert.Equal(t, []string{"single feature"}, ParseFeatures("single feature"))
	assert.Nil(t, ParseFeatures("  "))
}

func TestCreateCart(t *testing.T) {
	srv, calls := fakeStorefront(t, map[string]string{
		"mutation CartCreate": `{"data":{"cartCreate":{"cart":{"id":"cart-1","checkoutUrl":"https://shop.example.com/checkout/1",
			"cost":{"totalAmount":{"amount":"50.0","currencyCode":"USD"}},
			"lines":{"edges":[{"node":{"id":"line-1","quantity":2,"attributes":[{"key":"Date","value":"2025-01-01"}],"merchandise":{"id":"v1"}}}]}},
			"userErrors":[]}}}`,
	})
	c := newTestClient(t, srv.URL)

	cart, err := c.CreateCart(context.Background(), []domain.RemoteLineInput{{MerchandiseID: "v1", Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, "https://shop.example.com/checkout/1", cart.CheckoutURL)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "v1", cart.Lines[0].MerchandiseID)
	assert.Equal(t, "50", cart.TotalPrice.Amount.String())

	input := (*calls)[0].Variables["input"].(map[string]interface{})
	lines := input["lines"].([]interface{})
	require.Len(t, lines, 1)
	assert.Equal(t, "v1", lines[0].(map[string]interface{})["merchandiseId"])
}

func TestCreateCart_UserError(t *testing.T) {
	srv, _ := fakeStorefront(t, map[string]string{
		"mutation CartCreate": `{"data":{"cartCreate":{"cart":null,"userErrors":[{"code":"INVALID","field":["input"],"message":"Merchandise does not exist"}]}}}`,
	})
	c := newTestClient(t, srv.URL)

	_, err := c.CreateCart(context.Background(), []domain.RemoteLineInput{{MerchandiseID: "bad", Quantity: 1}})
	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Merchandise does not exist", userErr.Message)
}

func TestUpdateCart_ExpiredCart(t *testing.T) {
	srv, calls := fakeStorefront(t, map[string]string{
		"query Cart(": `{"data":{"cart":null}}`,
	})
	c := newTestClient(t, srv.URL)

	_, err := c.UpdateCart(context.Background(), "expired", []domain.RemoteLineInput{{MerchandiseID: "v1", Quantity: 1}})
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Len(t, *calls, 1)
}

func TestUpdateCart_ReplacesLines(t *testing.T) {
	cartJSON := `{"id":"cart-1","checkoutUrl":"u","cost":{"totalAmount":{"amount":"10","currencyCode":"USD"}},
		"lines":{"edges":[{"node":{"id":"old-line","quantity":1,"attributes":[],"merchandise":{"id":"v1"}}}]}}`
	srv, calls := fakeStorefront(t, map[string]string{
		"query Cart(":              `{"data":{"cart":` + cartJSON + `}}`,
		"mutation CartLinesRemove": `{"data":{"cartLinesRemove":{"cart":{"id":"cart-1"},"userErrors":[]}}}`,
		"mutation CartLinesAdd": `{"data":{"cartLinesAdd":{"cart":{"id":"cart-1","checkoutUrl":"u","cost":{"totalAmount":{"amount":"30","currencyCode":"USD"}},
			"lines":{"edges":[{"node":{"id":"new-line","quantity":3,"attributes":[],"merchandise":{"id":"v1"}}}]}},"userErrors":[]}}}`,
	})
	c := newTestClient(t, srv.URL)

	cart, err := c.UpdateCart(context.Background(), "cart-1", []domain.RemoteLineInput{{MerchandiseID: "v1", Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	require.Len(t, *calls, 3)
	assert.Equal(t, []interface{}{"old-line"}, (*calls)[1].Variables["lineIds"])
}

func TestDo_GraphQLErrors(t *testing.T) {
	srv, _ := fakeStorefront(t, map[string]string{
		"query Customer(": `{"data":null,"errors":[{"message":"Throttled"}]}`,
	})
	c := newTestClient(t, srv.URL)

	_, err := c.Customer(context.Background(), "token")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Customer", apiErr.Operation)
	assert.Equal(t, []string{"Throttled"}, apiErr.Messages)
}

func TestDo_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	_, err := c.ListProducts(context.Background(), 1, "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestCreateAccessToken(t *testing.T) {
	srv, _ := fakeStorefront(t, map[string]string{
		"mutation CustomerAccessTokenCreate": `{"data":{"customerAccessTokenCreate":{"customerAccessToken":{"accessToken":"tok","expiresAt":"2030-01-01T00:00:00Z"},"customerUserErrors":[]}}}`,
	})
	c := newTestClient(t, srv.URL)

	tok, err := c.CreateAccessToken(context.Background(), "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.Token)
	assert.Equal(t, 2030, tok.ExpiresAt.Year())
}

func TestCreateAccessToken_Unidentified(t *testing.T) {
	srv, _ := fakeStorefront(t, map[string]string{
		"mutation CustomerAccessTokenCreate": `{"data":{"customerAccessTokenCreate":{"customerAccessToken":null,"customerUserErrors":[{"code":"UNIDENTIFIED_CUSTOMER","field":["input"],"message":"Unidentified customer"}]}}}`,
	})
	c := newTestClient(t, srv.URL)

	_, err := c.CreateAccessToken(context.Background(), "a@example.com", "wrong")
	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "UNIDENTIFIED_CUSTOMER", userErr.Code)
}

func TestCustomerOrders_ParsesBookingAttributes(t *testing.T) {
	srv, _ := fakeStorefront(t, map[string]string{
		"query CustomerOrders": `{"data":{"customer":{"orders":{"edges":[{"node":{
			"id":"o1","name":"#1001","orderNumber":1001,"processedAt":"2025-02-01T10:00:00Z",
			"financialStatus":"PAID","fulfillmentStatus":"UNFULFILLED",
			"totalPrice":{"amount":"120.00","currencyCode":"USD"},
			"lineItems":{"edges":[{"node":{"title":"Desert Safari","quantity":2,
				"customAttributes":[{"key":"Date","value":"2025-03-10"},{"key":"Total Guests","value":"4"}],
				"variant":{"id":"v9","image":{"url":"https://cdn.example.com/s.jpg"},"price":{"amount":"60.00","currencyCode":"USD"}}}}]}
		}}]}}}}`,
	})
	c := newTestClient(t, srv.URL)

	orders, err := c.CustomerOrders(context.Background(), "tok", 5)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 1)
	line := orders[0].Lines[0]
	require.NotNil(t, line.CustomAttributes)
	assert.Equal(t, "2025-03-10", line.CustomAttributes.Date)
	assert.Equal(t, "4", line.CustomAttributes.TotalGuests)
	assert.Equal(t, "v9", line.VariantID)
	assert.Equal(t, "120", orders[0].TotalPrice.Amount.String())
}
