package commerce

import (
	"context"
	"fmt"

	"umrah-storefront/internal/domain"
)

type cartNode struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Cost        struct {
		TotalAmount moneyNode `json:"totalAmount"`
	} `json:"cost"`
	Lines struct {
		Edges []struct {
			Node struct {
				ID          string             `json:"id"`
				Quantity    int                `json:"quantity"`
				Attributes  []domain.Attribute `json:"attributes"`
				Merchandise struct {
					ID string `json:"id"`
				} `json:"merchandise"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
}

func toRemoteCart(n cartNode) *domain.RemoteCart {
	cart := &domain.RemoteCart{
		ID:          n.ID,
		CheckoutURL: n.CheckoutURL,
		TotalPrice:  toMoney(n.Cost.TotalAmount),
		Lines:       make([]domain.RemoteCartLine, 0, len(n.Lines.Edges)),
	}
	for _, e := range n.Lines.Edges {
		cart.Lines = append(cart.Lines, domain.RemoteCartLine{
			ID:            e.Node.ID,
			MerchandiseID: e.Node.Merchandise.ID,
			Quantity:      e.Node.Quantity,
			Attributes:    e.Node.Attributes,
		})
	}
	return cart
}

// CreateCart creates a new remote cart holding lines.
func (c *Client) CreateCart(ctx context.Context, lines []domain.RemoteLineInput) (*domain.RemoteCart, error) {
	var data struct {
		CartCreate struct {
			Cart       *cartNode          `json:"cart"`
			UserErrors []userErrorPayload `json:"userErrors"`
		} `json:"cartCreate"`
	}
	vars := map[string]interface{}{"input": map[string]interface{}{"lines": lines}}
	if err := c.do(ctx, cartCreateMutation, vars, &data); err != nil {
		return nil, err
	}
	if err := firstUserError("cartCreate", data.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("%w: cartCreate returned no cart", ErrInvalidResponse)
	}
	return toRemoteCart(*data.CartCreate.Cart), nil
}

// GetCart loads a remote cart; an unknown or expired id yields ErrCartNotFound.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.RemoteCart, error) {
	var data struct {
		Cart *cartNode `json:"cart"`
	}
	if err := c.do(ctx, cartQuery, map[string]interface{}{"id": cartID}, &data); err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, ErrCartNotFound
	}
	return toRemoteCart(*data.Cart), nil
}

// UpdateCart replaces the lines of an existing remote cart with lines.
func (c *Client) UpdateCart(ctx context.Context, cartID string, lines []domain.RemoteLineInput) (*domain.RemoteCart, error) {
	current, err := c.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if len(current.Lines) > 0 {
		ids := make([]string, 0, len(current.Lines))
		for _, l := range current.Lines {
			ids = append(ids, l.ID)
		}
		var removed struct {
			CartLinesRemove struct {
				UserErrors []userErrorPayload `json:"userErrors"`
			} `json:"cartLinesRemove"`
		}
		vars := map[string]interface{}{"cartId": cartID, "lineIds": ids}
		if err := c.do(ctx, cartLinesRemoveMutation, vars, &removed); err != nil {
			return nil, err
		}
		if err := firstUserError("cartLinesRemove", removed.CartLinesRemove.UserErrors); err != nil {
			return nil, err
		}
	}

	if len(lines) == 0 {
		return c.GetCart(ctx, cartID)
	}

	var added struct {
		CartLinesAdd struct {
			Cart       *cartNode          `json:"cart"`
			UserErrors []userErrorPayload `json:"userErrors"`
		} `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.do(ctx, cartLinesAddMutation, vars, &added); err != nil {
		return nil, err
	}
	if err := firstUserError("cartLinesAdd", added.CartLinesAdd.UserErrors); err != nil {
		return nil, err
	}
	if added.CartLinesAdd.Cart == nil {
		return nil, ErrCartNotFound
	}
	return toRemoteCart(*added.CartLinesAdd.Cart), nil
}
