package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"umrah-storefront/internal/domain"
)

func TestMergeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.CustomAttributes
		incoming *domain.CustomAttributes
		want     *domain.CustomAttributes
	}{
		{
			name:     "guest totals add up",
			existing: &domain.CustomAttributes{TotalGuests: "3"},
			incoming: &domain.CustomAttributes{TotalGuests: "2"},
			want:     &domain.CustomAttributes{TotalGuests: "5"},
		},
		{
			name:     "missing total counts as zero",
			existing: &domain.CustomAttributes{Adults: "1"},
			incoming: &domain.CustomAttributes{TotalGuests: "4", Children: "2"},
			want:     &domain.CustomAttributes{Adults: "1", Children: "2", TotalGuests: "4"},
		},
		{
			name:     "invalid total counts as zero",
			existing: &domain.CustomAttributes{TotalGuests: "many"},
			incoming: &domain.CustomAttributes{TotalGuests: "2"},
			want:     &domain.CustomAttributes{TotalGuests: "2"},
		},
		{
			name:     "numeric prefix counts",
			existing: &domain.CustomAttributes{TotalGuests: "2 guests"},
			incoming: &domain.CustomAttributes{TotalGuests: "3"},
			want:     &domain.CustomAttributes{TotalGuests: "5"},
		},
		{
			name:     "incoming nil keeps existing",
			existing: &domain.CustomAttributes{Date: "2026-01-01", TotalGuests: "2"},
			want:     &domain.CustomAttributes{Date: "2026-01-01", TotalGuests: "2"},
		},
		{
			name: "both nil",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeAttributes(tt.existing, tt.incoming))
		})
	}
}

func TestMergeItem_DoesNotMutateInput(t *testing.T) {
	items := []domain.CartItem{{VariantID: "v", Quantity: 1, CustomAttributes: &domain.CustomAttributes{TotalGuests: "1"}}}

	out := mergeItem(items, domain.CartItem{VariantID: "v", Quantity: 2, CustomAttributes: &domain.CustomAttributes{TotalGuests: "1"}})

	assert.Equal(t, 3, out[0].Quantity)
	assert.Equal(t, "2", out[0].CustomAttributes.TotalGuests)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "1", items[0].CustomAttributes.TotalGuests)
}

func TestMergeItem_NoAttributesMatchesEmptyDate(t *testing.T) {
	items := []domain.CartItem{{VariantID: "ihram", Quantity: 1}}

	out := mergeItem(items, domain.CartItem{VariantID: "ihram", Quantity: 1})

	assert.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Nil(t, out[0].CustomAttributes)
}

func TestSetQuantity_MissingVariant(t *testing.T) {
	_, found := setQuantity([]domain.CartItem{{VariantID: "a", Quantity: 1}}, "b", 2)
	assert.False(t, found)
}

func TestSetQuantity_FirstMatchOnly(t *testing.T) {
	items := []domain.CartItem{
		{VariantID: "v1", Quantity: 1, CustomAttributes: &domain.CustomAttributes{Date: "2025-01-01"}},
		{VariantID: "v1", Quantity: 4, CustomAttributes: &domain.CustomAttributes{Date: "2025-02-02"}},
	}

	out, found := setQuantity(items, "v1", 3)
	assert.True(t, found)
	assert.Equal(t, 3, out[0].Quantity)
	assert.Equal(t, 4, out[1].Quantity)
	assert.Equal(t, 1, items[0].Quantity)
}
