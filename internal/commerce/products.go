package commerce

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"umrah-storefront/internal/domain"
)

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type variantNode struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	AvailableForSale bool       `json:"availableForSale"`
	Price            moneyNode  `json:"price"`
	CompareAtPrice   *moneyNode `json:"compareAtPrice"`
}

type metafieldNode struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type productNode struct {
	ID              string   `json:"id"`
	Handle          string   `json:"handle"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"descriptionHtml"`
	ProductType     string   `json:"productType"`
	Vendor          string   `json:"vendor"`
	Tags            []string `json:"tags"`
	PriceRange      struct {
		MinVariantPrice moneyNode `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	// Metafields requested by identifier come back as null when unset.
	Metafields []*metafieldNode `json:"metafields"`
}

// ListProducts returns one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, first int, after string) (*domain.ProductPage, error) {
	if first <= 0 {
		first = 20
	}
	vars := map[string]interface{}{"first": first}
	if after != "" {
		vars["after"] = after
	}
	var data struct {
		Products struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.do(ctx, listProductsQuery, vars, &data); err != nil {
		return nil, err
	}
	page := &domain.ProductPage{
		Products:    make([]domain.Product, 0, len(data.Products.Edges)),
		HasNextPage: data.Products.PageInfo.HasNextPage,
		EndCursor:   data.Products.PageInfo.EndCursor,
	}
	for _, e := range data.Products.Edges {
		page.Products = append(page.Products, toProduct(e.Node))
	}
	return page, nil
}

// ProductByHandle returns the detail view of a product or domain.ErrNotFound.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*domain.ProductDetail, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.do(ctx, productByHandleQuery, map[string]interface{}{"handle": handle}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.ProductDetail{
		Product:         toProduct(*data.Product),
		DescriptionHTML: data.Product.DescriptionHTML,
	}, nil
}

func toProduct(n productNode) domain.Product {
	p := domain.Product{
		ID:          n.ID,
		Handle:      n.Handle,
		Title:       n.Title,
		Description: n.Description,
		ProductType: n.ProductType,
		Vendor:      n.Vendor,
		Tags:        n.Tags,
		Price:       toMoney(n.PriceRange.MinVariantPrice),
	}
	for _, e := range n.Images.Edges {
		if strings.TrimSpace(e.Node.URL) == "" {
			continue
		}
		p.Images = append(p.Images, domain.Image{
			URL:     e.Node.URL,
			AltText: e.Node.AltText,
			Width:   e.Node.Width,
			Height:  e.Node.Height,
		})
	}
	for _, e := range n.Variants.Edges {
		v := domain.Variant{
			ID:               e.Node.ID,
			Title:            e.Node.Title,
			AvailableForSale: e.Node.AvailableForSale,
			Price:            toMoney(e.Node.Price),
		}
		if e.Node.CompareAtPrice != nil {
			m := toMoney(*e.Node.CompareAtPrice)
			v.CompareAtPrice = &m
		}
		p.Variants = append(p.Variants, v)
	}
	for _, m := range n.Metafields {
		if m == nil {
			continue
		}
		switch m.Key {
		case "category":
			p.Category = strings.TrimSpace(m.Value)
		case "rating":
			p.Rating = parseRating(m.Value)
		case "features":
			p.Features = ParseFeatures(m.Value)
		}
	}
	return p
}

func toMoney(m moneyNode) domain.Money {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.Amount))
	if err != nil {
		amount = decimal.Zero
	}
	return domain.Money{Amount: amount, CurrencyCode: m.CurrencyCode}
}

// parseRating accepts either a bare number or the platform's rating JSON ({"value": "4.5", ...}).
func parseRating(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		return d
	}
	var obj struct {
		Value json.Number `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		if d, err := decimal.NewFromString(obj.Value.String()); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// ParseFeatures reads the features metafield. The value is meant to be a JSON list but
// merchants also store plain text, so it falls back to comma splitting and then to a
// single-element list.
func ParseFeatures(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return compact(list)
	}
	if strings.Contains(raw, ",") {
		return compact(strings.Split(raw, ","))
	}
	return []string{raw}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
