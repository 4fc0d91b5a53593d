package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Remote line attribute keys sent to the commerce platform.
const (
	AttrDate        = "Date"
	AttrAdults      = "Adults"
	AttrChildren    = "Children"
	AttrTotalGuests = "Total Guests"
)

// CustomAttributes is the booking annotation carried by a line item.
type CustomAttributes struct {
	Date        string `json:"date,omitempty"`
	Adults      string `json:"adults,omitempty"`
	Children    string `json:"children,omitempty"`
	TotalGuests string `json:"totalGuests,omitempty"`
}

// CartItem is one local line; (VariantID, CustomAttributes.Date) identifies it for merging.
type CartItem struct {
	VariantID        string            `json:"variantId"`
	Quantity         int               `json:"quantity"`
	Title            string            `json:"title"`
	Price            decimal.Decimal   `json:"price"`
	Image            string            `json:"image,omitempty"`
	ProductID        string            `json:"productId"`
	CustomAttributes *CustomAttributes `json:"customAttributes,omitempty"`
}

// Date returns the booking date of the line or "" when it has none.
func (i CartItem) Date() string {
	if i.CustomAttributes == nil {
		return ""
	}
	return i.CustomAttributes.Date
}

// Subtotal is price times quantity in the base currency.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Attribute is a key/value pair attached to a remote cart or order line.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RemoteLineInput is a line sent to the commerce platform when creating or updating a cart.
type RemoteLineInput struct {
	MerchandiseID string      `json:"merchandiseId"`
	Quantity      int         `json:"quantity"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

// RemoteCartLine mirrors a line of the remote cart.
type RemoteCartLine struct {
	ID            string      `json:"id"`
	MerchandiseID string      `json:"merchandiseId"`
	Quantity      int         `json:"quantity"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

// RemoteCart is the session-scoped cart held by the commerce platform.
type RemoteCart struct {
	ID          string           `json:"id"`
	CheckoutURL string           `json:"checkoutUrl"`
	Lines       []RemoteCartLine `json:"lines"`
	TotalPrice  Money            `json:"totalPrice"`
}

// AttributesToList renders custom attributes as remote line attributes, skipping empty values.
func AttributesToList(a *CustomAttributes) []Attribute {
	if a == nil {
		return nil
	}
	var out []Attribute
	for _, kv := range []Attribute{
		{Key: AttrDate, Value: a.Date},
		{Key: AttrAdults, Value: a.Adults},
		{Key: AttrChildren, Value: a.Children},
		{Key: AttrTotalGuests, Value: a.TotalGuests},
	} {
		if strings.TrimSpace(kv.Value) == "" {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// AttributesFromList is the inverse of AttributesToList; unknown keys are ignored.
func AttributesFromList(attrs []Attribute) *CustomAttributes {
	var out CustomAttributes
	found := false
	for _, a := range attrs {
		switch a.Key {
		case AttrDate:
			out.Date = a.Value
		case AttrAdults:
			out.Adults = a.Value
		case AttrChildren:
			out.Children = a.Value
		case AttrTotalGuests:
			out.TotalGuests = a.Value
		default:
			continue
		}
		found = true
	}
	if !found {
		return nil
	}
	return &out
}

// ParseCount reads the leading integer of a guest count ("2 guests" and "2.5" are 2).
// Values without leading digits count as zero.
func ParseCount(v string) int {
	v = strings.TrimSpace(v)
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}
