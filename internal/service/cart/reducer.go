package cart

import (
	"strconv"

	"umrah-storefront/internal/domain"
)

// The functions below are pure: they never mutate their input slice.

// mergeItem adds item to items. A line with the same variant and booking date absorbs it:
// quantities add up, non-empty attributes overwrite, and guest totals are summed.
func mergeItem(items []domain.CartItem, item domain.CartItem) []domain.CartItem {
	out := cloneItems(items)
	for i := range out {
		if out[i].VariantID != item.VariantID || out[i].Date() != item.Date() {
			continue
		}
		out[i].Quantity += item.Quantity
		out[i].CustomAttributes = mergeAttributes(out[i].CustomAttributes, item.CustomAttributes)
		return out
	}
	item.CustomAttributes = copyAttributes(item.CustomAttributes)
	return append(out, item)
}

func mergeAttributes(existing, incoming *domain.CustomAttributes) *domain.CustomAttributes {
	if existing == nil && incoming == nil {
		return nil
	}
	var prev, next domain.CustomAttributes
	if existing != nil {
		prev = *existing
	}
	if incoming != nil {
		next = *incoming
	}

	merged := prev
	if next.Date != "" {
		merged.Date = next.Date
	}
	if next.Adults != "" {
		merged.Adults = next.Adults
	}
	if next.Children != "" {
		merged.Children = next.Children
	}
	total := domain.ParseCount(prev.TotalGuests) + domain.ParseCount(next.TotalGuests)
	if total > 0 || prev.TotalGuests != "" || next.TotalGuests != "" {
		merged.TotalGuests = strconv.Itoa(total)
	}
	return &merged
}

// removeVariant drops every line of variantID regardless of booking date.
func removeVariant(items []domain.CartItem, variantID string) ([]domain.CartItem, bool) {
	out := make([]domain.CartItem, 0, len(items))
	removed := false
	for _, it := range items {
		if it.VariantID == variantID {
			removed = true
			continue
		}
		it.CustomAttributes = copyAttributes(it.CustomAttributes)
		out = append(out, it)
	}
	return out, removed
}

// setQuantity overwrites the quantity of the first line of variantID; later date lines
// of the same variant keep theirs.
func setQuantity(items []domain.CartItem, variantID string, qty int) ([]domain.CartItem, bool) {
	out := cloneItems(items)
	for i := range out {
		if out[i].VariantID == variantID {
			out[i].Quantity = qty
			return out, true
		}
	}
	return out, false
}

// remoteLines renders the full local list as remote cart lines.
func remoteLines(items []domain.CartItem) []domain.RemoteLineInput {
	lines := make([]domain.RemoteLineInput, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.RemoteLineInput{
			MerchandiseID: it.VariantID,
			Quantity:      it.Quantity,
			Attributes:    domain.AttributesToList(it.CustomAttributes),
		})
	}
	return lines
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].CustomAttributes = copyAttributes(out[i].CustomAttributes)
	}
	return out
}

func copyAttributes(a *domain.CustomAttributes) *domain.CustomAttributes {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
