package domain

import "github.com/shopspring/decimal"

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type Variant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"availableForSale"`
	Price            Money  `json:"price"`
	CompareAtPrice   *Money `json:"compareAtPrice,omitempty"`
}

// Product is the listing projection of a catalog product.
type Product struct {
	ID          string          `json:"id"`
	Handle      string          `json:"handle"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	ProductType string          `json:"productType,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Price       Money           `json:"price"`
	Images      []Image         `json:"images,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
	Category    string          `json:"category,omitempty"`
	Rating      decimal.Decimal `json:"rating"`
	Features    []string        `json:"features,omitempty"`
}

// ProductDetail adds the fields only the detail page needs.
type ProductDetail struct {
	Product
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

type ProductPage struct {
	Products    []Product `json:"products"`
	HasNextPage bool      `json:"hasNextPage"`
	EndCursor   string    `json:"endCursor,omitempty"`
}
