package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAttributesToList_SkipsEmpty(t *testing.T) {
	attrs := AttributesToList(&CustomAttributes{Date: "2026-04-10", Adults: "2", TotalGuests: "2"})

	assert.Equal(t, []Attribute{
		{Key: AttrDate, Value: "2026-04-10"},
		{Key: AttrAdults, Value: "2"},
		{Key: AttrTotalGuests, Value: "2"},
	}, attrs)
	assert.Nil(t, AttributesToList(nil))
}

func TestAttributesFromList(t *testing.T) {
	got := AttributesFromList([]Attribute{{Key: AttrDate, Value: "2026-04-10"}, {Key: "_internal", Value: "x"}, {Key: AttrChildren, Value: "1"}})

	assert.Equal(t, &CustomAttributes{Date: "2026-04-10", Children: "1"}, got)
	assert.Nil(t, AttributesFromList([]Attribute{{Key: "other", Value: "v"}}))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 3, ParseCount(" 3 "))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("two"))
	assert.Equal(t, 2, ParseCount("2 guests"))
	assert.Equal(t, 2, ParseCount("2.5"))
	assert.Equal(t, 4, ParseCount("+4"))
	assert.Equal(t, -1, ParseCount("-1x"))
	assert.Equal(t, 0, ParseCount("-"))
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{Quantity: 3, Price: decimal.RequireFromString("12.50")}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("37.5")))
	assert.Equal(t, "", item.Date())
}

func TestSession_LoggedIn(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, Session{}.LoggedIn(now))
	assert.True(t, Session{CustomerToken: "t"}.LoggedIn(now))
	assert.True(t, Session{CustomerToken: "t", CustomerTokenExpiresAt: &future}.LoggedIn(now))
	assert.False(t, Session{CustomerToken: "t", CustomerTokenExpiresAt: &past}.LoggedIn(now))

	s := Session{CustomerToken: "t", Customer: &Customer{ID: "c"}, Items: []CartItem{{VariantID: "v"}}, CartDirty: true}
	s.ClearCustomer()
	assert.Empty(t, s.CustomerToken)
	assert.Nil(t, s.Customer)
	s.ClearCart()
	assert.Nil(t, s.Items)
	assert.False(t, s.CartDirty)
}
