package commerce

import (
	"context"
	"time"

	"umrah-storefront/internal/domain"
)

// CustomerInput carries the fields accepted by customer registration.
type CustomerInput struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"acceptsMarketing"`
}

type customerNode struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	FirstName      string                  `json:"firstName"`
	LastName       string                  `json:"lastName"`
	Phone          string                  `json:"phone"`
	DefaultAddress *domain.CustomerAddress `json:"defaultAddress"`
}

func (n customerNode) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:             n.ID,
		Email:          n.Email,
		FirstName:      n.FirstName,
		LastName:       n.LastName,
		Phone:          n.Phone,
		DefaultAddress: n.DefaultAddress,
	}
}

// CreateAccessToken logs a customer in.
func (c *Client) CreateAccessToken(ctx context.Context, email, password string) (*domain.AccessToken, error) {
	var data struct {
		Result struct {
			Token *struct {
				AccessToken string    `json:"accessToken"`
				ExpiresAt   time.Time `json:"expiresAt"`
			} `json:"customerAccessToken"`
			Errors []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerAccessTokenCreate"`
	}
	vars := map[string]interface{}{"input": map[string]interface{}{"email": email, "password": password}}
	if err := c.do(ctx, customerAccessTokenCreateMutation, vars, &data); err != nil {
		return nil, err
	}
	if err := firstUserError("customerAccessTokenCreate", data.Result.Errors); err != nil {
		return nil, err
	}
	if data.Result.Token == nil {
		return nil, &UserError{Operation: "customerAccessTokenCreate", Code: "UNIDENTIFIED_CUSTOMER", Message: "Unidentified customer"}
	}
	return &domain.AccessToken{Token: data.Result.Token.AccessToken, ExpiresAt: data.Result.Token.ExpiresAt}, nil
}

// DeleteAccessToken revokes a customer access token.
func (c *Client) DeleteAccessToken(ctx context.Context, token string) error {
	var data struct {
		Result struct {
			UserErrors []userErrorPayload `json:"userErrors"`
		} `json:"customerAccessTokenDelete"`
	}
	if err := c.do(ctx, customerAccessTokenDeleteMutation, map[string]interface{}{"customerAccessToken": token}, &data); err != nil {
		return err
	}
	return firstUserError("customerAccessTokenDelete", data.Result.UserErrors)
}

// CreateCustomer registers a new customer account.
func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	var data struct {
		Result struct {
			Customer *customerNode      `json:"customer"`
			Errors   []userErrorPayload `json:"customerUserErrors"`
		} `json:"customerCreate"`
	}
	if err := c.do(ctx, customerCreateMutation, map[string]interface{}{"input": in}, &data); err != nil {
		return nil, err
	}
	if err := firstUserError("customerCreate", data.Result.Errors); err != nil {
		return nil, err
	}
	if data.Result.Customer == nil {
		return nil, &UserError{Operation: "customerCreate", Message: "customer was not created"}
	}
	return data.Result.Customer.toDomain(), nil
}

// Customer loads the profile bound to an access token; an invalid token yields domain.ErrNotFound.
func (c *Client) Customer(ctx context.Context, token string) (*domain.Customer, error) {
	var data struct {
		Customer *customerNode `json:"customer"`
	}
	if err := c.do(ctx, customerQuery, map[string]interface{}{"customerAccessToken": token}, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, domain.ErrNotFound
	}
	return data.Customer.toDomain(), nil
}

type orderNode struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OrderNumber       int       `json:"orderNumber"`
	ProcessedAt       time.Time `json:"processedAt"`
	FinancialStatus   string    `json:"financialStatus"`
	FulfillmentStatus string    `json:"fulfillmentStatus"`
	TotalPrice        moneyNode `json:"totalPrice"`
	LineItems         struct {
		Edges []struct {
			Node struct {
				Title            string             `json:"title"`
				Quantity         int                `json:"quantity"`
				CustomAttributes []domain.Attribute `json:"customAttributes"`
				Variant          *struct {
					ID    string `json:"id"`
					Image *struct {
						URL string `json:"url"`
					} `json:"image"`
					Price *moneyNode `json:"price"`
				} `json:"variant"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

// CustomerOrders returns the customer's most recent orders, newest first.
func (c *Client) CustomerOrders(ctx context.Context, token string, first int) ([]domain.Order, error) {
	if first <= 0 {
		first = 20
	}
	var data struct {
		Customer *struct {
			Orders struct {
				Edges []struct {
					Node orderNode `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		} `json:"customer"`
	}
	vars := map[string]interface{}{"customerAccessToken": token, "first": first}
	if err := c.do(ctx, customerOrdersQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, domain.ErrNotFound
	}
	orders := make([]domain.Order, 0, len(data.Customer.Orders.Edges))
	for _, e := range data.Customer.Orders.Edges {
		n := e.Node
		order := domain.Order{
			ID:                n.ID,
			Name:              n.Name,
			OrderNumber:       n.OrderNumber,
			ProcessedAt:       n.ProcessedAt,
			FinancialStatus:   n.FinancialStatus,
			FulfillmentStatus: n.FulfillmentStatus,
			TotalPrice:        toMoney(n.TotalPrice),
			Lines:             make([]domain.OrderLine, 0, len(n.LineItems.Edges)),
		}
		for _, le := range n.LineItems.Edges {
			line := domain.OrderLine{
				Title:            le.Node.Title,
				Quantity:         le.Node.Quantity,
				CustomAttributes: domain.AttributesFromList(le.Node.CustomAttributes),
			}
			if v := le.Node.Variant; v != nil {
				line.VariantID = v.ID
				if v.Image != nil {
					line.Image = v.Image.URL
				}
				if v.Price != nil {
					m := toMoney(*v.Price)
					line.Price = &m
				}
			}
			order.Lines = append(order.Lines, line)
		}
		orders = append(orders, order)
	}
	return orders, nil
}
