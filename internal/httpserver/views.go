package httpserver

import (
	"time"

	"github.com/shopspring/decimal"

	"umrah-storefront/internal/currency"
	"umrah-storefront/internal/domain"
	cartsvc "umrah-storefront/internal/service/cart"
)

// priceView carries a base price together with its conversion into the display currency.
type priceView struct {
	Amount       decimal.Decimal `json:"amount"`
	BaseCurrency string          `json:"baseCurrency"`
	Converted    decimal.Decimal `json:"converted"`
	Currency     string          `json:"currency"`
	Formatted    string          `json:"formatted"`
}

func newPrice(cur currency.Currency, amount decimal.Decimal) priceView {
	return priceView{
		Amount:       amount,
		BaseCurrency: currency.Base,
		Converted:    cur.Convert(amount).Round(2),
		Currency:     cur.Code,
		Formatted:    cur.Format(amount),
	}
}

func newPricePtr(cur currency.Currency, m *domain.Money) *priceView {
	if m == nil {
		return nil
	}
	p := newPrice(cur, m.Amount)
	return &p
}

type variantView struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	AvailableForSale bool       `json:"availableForSale"`
	Price            priceView  `json:"price"`
	CompareAtPrice   *priceView `json:"compareAtPrice,omitempty"`
}

type productView struct {
	ID          string          `json:"id"`
	Handle      string          `json:"handle"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ProductType string          `json:"productType,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Tags        []string        `json:"tags"`
	Price       priceView       `json:"price"`
	Images      []domain.Image  `json:"images"`
	Variants    []variantView   `json:"variants"`
	Category    string          `json:"category,omitempty"`
	Rating      decimal.Decimal `json:"rating"`
	Features    []string        `json:"features"`
}

type productDetailView struct {
	productView
	DescriptionHTML string `json:"descriptionHtml"`
}

type productPageView struct {
	Products    []productView `json:"products"`
	HasNextPage bool          `json:"hasNextPage"`
	EndCursor   string        `json:"endCursor,omitempty"`
}

func toProductView(cur currency.Currency, p domain.Product) productView {
	v := productView{
		ID:          p.ID,
		Handle:      p.Handle,
		Title:       p.Title,
		Description: p.Description,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Tags:        nonNil(p.Tags),
		Price:       newPrice(cur, p.Price.Amount),
		Images:      p.Images,
		Variants:    make([]variantView, 0, len(p.Variants)),
		Category:    p.Category,
		Rating:      p.Rating,
		Features:    nonNil(p.Features),
	}
	if v.Images == nil {
		v.Images = []domain.Image{}
	}
	for _, variant := range p.Variants {
		v.Variants = append(v.Variants, variantView{
			ID:               variant.ID,
			Title:            variant.Title,
			AvailableForSale: variant.AvailableForSale,
			Price:            newPrice(cur, variant.Price.Amount),
			CompareAtPrice:   newPricePtr(cur, variant.CompareAtPrice),
		})
	}
	return v
}

func toProductPageView(cur currency.Currency, page *domain.ProductPage) productPageView {
	out := productPageView{
		Products:    make([]productView, 0, len(page.Products)),
		HasNextPage: page.HasNextPage,
		EndCursor:   page.EndCursor,
	}
	for _, p := range page.Products {
		out.Products = append(out.Products, toProductView(cur, p))
	}
	return out
}

type cartItemView struct {
	domain.CartItem
	UnitPrice priceView `json:"unitPrice"`
	LineTotal priceView `json:"lineTotal"`
}

type cartView struct {
	Items        []cartItemView `json:"items"`
	ItemCount    int            `json:"itemCount"`
	Subtotal     priceView      `json:"subtotal"`
	RemoteCartID string         `json:"remoteCartId,omitempty"`
	CheckoutURL  string         `json:"checkoutUrl,omitempty"`
	Currency     string         `json:"currency"`
}

func toCartView(cur currency.Currency, v *cartsvc.View) cartView {
	out := cartView{
		Items:       make([]cartItemView, 0, len(v.Items)),
		ItemCount:   v.ItemCount,
		Subtotal:    newPrice(cur, v.Subtotal),
		CheckoutURL: v.CheckoutURL,
		Currency:    cur.Code,
	}
	if v.RemoteCart != nil {
		out.RemoteCartID = v.RemoteCart.ID
	}
	for _, it := range v.Items {
		out.Items = append(out.Items, cartItemView{
			CartItem:  it,
			UnitPrice: newPrice(cur, it.Price),
			LineTotal: newPrice(cur, it.Subtotal()),
		})
	}
	return out
}

type orderLineView struct {
	Title            string                   `json:"title"`
	Quantity         int                      `json:"quantity"`
	VariantID        string                   `json:"variantId,omitempty"`
	Image            string                   `json:"image,omitempty"`
	Price            *priceView               `json:"price,omitempty"`
	CustomAttributes *domain.CustomAttributes `json:"customAttributes,omitempty"`
}

type orderView struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int             `json:"orderNumber"`
	ProcessedAt       time.Time       `json:"processedAt"`
	FinancialStatus   string          `json:"financialStatus"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	TotalPrice        priceView       `json:"totalPrice"`
	Lines             []orderLineView `json:"lines"`
}

func toOrderViews(cur currency.Currency, orders []domain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		v := orderView{
			ID:                o.ID,
			Name:              o.Name,
			OrderNumber:       o.OrderNumber,
			ProcessedAt:       o.ProcessedAt,
			FinancialStatus:   o.FinancialStatus,
			FulfillmentStatus: o.FulfillmentStatus,
			TotalPrice:        newPrice(cur, o.TotalPrice.Amount),
			Lines:             make([]orderLineView, 0, len(o.Lines)),
		}
		for _, l := range o.Lines {
			v.Lines = append(v.Lines, orderLineView{
				Title:            l.Title,
				Quantity:         l.Quantity,
				VariantID:        l.VariantID,
				Image:            l.Image,
				Price:            newPricePtr(cur, l.Price),
				CustomAttributes: l.CustomAttributes,
			})
		}
		out = append(out, v)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
