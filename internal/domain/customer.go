package domain

import "time"

// CustomerAddress stores address fields returned to clients.
type CustomerAddress struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Customer is the commerce platform's customer profile.
type Customer struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	FirstName      string           `json:"firstName,omitempty"`
	LastName       string           `json:"lastName,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	DefaultAddress *CustomerAddress `json:"defaultAddress,omitempty"`
}

// AccessToken is a customer access token issued by the commerce platform.
type AccessToken struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type OrderLine struct {
	Title            string            `json:"title"`
	Quantity         int               `json:"quantity"`
	VariantID        string            `json:"variantId,omitempty"`
	Image            string            `json:"image,omitempty"`
	Price            *Money            `json:"price,omitempty"`
	CustomAttributes *CustomAttributes `json:"customAttributes,omitempty"`
}

type Order struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	OrderNumber       int         `json:"orderNumber"`
	ProcessedAt       time.Time   `json:"processedAt"`
	FinancialStatus   string      `json:"financialStatus,omitempty"`
	FulfillmentStatus string      `json:"fulfillmentStatus,omitempty"`
	TotalPrice        Money       `json:"totalPrice"`
	Lines             []OrderLine `json:"lines"`
}

// Booking is an order line that carries a booking date.
type Booking struct {
	OrderID     string           `json:"orderId"`
	OrderName   string           `json:"orderName"`
	ProcessedAt time.Time        `json:"processedAt"`
	Title       string           `json:"title"`
	Quantity    int              `json:"quantity"`
	Attributes  CustomAttributes `json:"attributes"`
}
