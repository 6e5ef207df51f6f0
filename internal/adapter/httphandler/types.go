package httphandler

import "github.com/niksmo/visioncart/internal/core/domain"

type (
	Product struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Price    int64  `json:"price"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}

	CartEntry struct {
		Position int     `json:"position"`
		Product  Product `json:"product"`
	}

	View struct {
		Page    string   `json:"page"`
		Product *Product `json:"product,omitempty"`
	}

	Filter struct {
		Category string `json:"category"`
		MaxPrice int64  `json:"max_price"`
	}

	Snapshot struct {
		Version   uint64      `json:"version"`
		View      View        `json:"view"`
		Filter    Filter      `json:"filter"`
		Catalog   []Product   `json:"catalog"`
		Cart      []CartEntry `json:"cart"`
		CartCount int         `json:"cart_count"`
		CartTotal int64       `json:"cart_total"`
		Selected  *Product    `json:"selected,omitempty"`
	}
)

type (
	CategoryRequest struct {
		Category string `json:"category"`
	}

	MaxPriceRequest struct {
		MaxPrice *int64 `json:"max_price"`
	}

	AddToCartRequest struct {
		ProductID int64 `json:"product_id"`
	}
)

func fromDomainProduct(p domain.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: string(p.Category),
		Image:    p.Image,
	}
}

func fromDomainSnapshot(s domain.Snapshot) Snapshot {
	v := Snapshot{
		Version: s.Version,
		View:    View{Page: s.View.String()},
		Filter: Filter{
			Category: string(s.Criteria.Category),
			MaxPrice: s.Criteria.MaxPrice,
		},
		Catalog:   make([]Product, len(s.Catalog)),
		Cart:      make([]CartEntry, len(s.Cart)),
		CartCount: s.CartCount,
		CartTotal: s.CartTotal,
	}

	if p, ok := s.View.Product(); ok {
		dto := fromDomainProduct(p)
		v.View.Product = &dto
	}

	for i, p := range s.Catalog {
		v.Catalog[i] = fromDomainProduct(p)
	}

	for i, e := range s.Cart {
		v.Cart[i] = CartEntry{Position: i, Product: fromDomainProduct(e.Product)}
	}

	if s.Selected != nil {
		dto := fromDomainProduct(*s.Selected)
		v.Selected = &dto
	}
	return v
}
