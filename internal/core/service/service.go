package service

import (
	"time"

	"github.com/niksmo/visioncart/internal/core/cart"
	"github.com/niksmo/visioncart/internal/core/catalog"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/navigation"
	"github.com/niksmo/visioncart/internal/core/port"
)

var _ port.Storefront = (*Service)(nil)

// A Service owns the storefront state: the cart, the navigation state and
// the catalog page filter. Derived values are computed on every read.
type Service struct {
	products []domain.Product
	byID     map[int64]domain.Product
	criteria domain.FilterCriteria
	cart     *cart.Store
	nav      *navigation.State
	recorder port.EventRecorder
	version  uint64
	now      func() time.Time
}

type Opt func(*Service)

// RecorderOpt sets the recorder notified after every processed intent.
func RecorderOpt(r port.EventRecorder) Opt {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// ClockOpt replaces the clock stamping recorded events.
func ClockOpt(now func() time.Time) Opt {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a service on the catalog page with an empty cart.
//
// The products are copied; later changes to the slice are not observed.
func New(products []domain.Product, opts ...Opt) *Service {
	s := &Service{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int64]domain.Product, len(products)),
		criteria: domain.DefaultFilterCriteria(),
		cart:     cart.New(),
		nav:      navigation.New(),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	copy(s.products, products)
	for _, p := range s.products {
		s.byID[p.ID] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) SelectCategory(c domain.Category) {
	s.criteria.Category = c
	s.commit(domain.IntentSelectCategory, 0, -1)
}

func (s *Service) SetMaxPrice(v int64) {
	s.criteria.MaxPrice = v
	s.commit(domain.IntentSetMaxPrice, 0, -1)
}

func (s *Service) AddToCart(p domain.Product) {
	s.cart.Add(p)
	s.commit(domain.IntentAddToCart, p.ID, -1)
}

// RemoveFromCart removes the cart entry at position. Positions outside the
// cart leave it unchanged.
func (s *Service) RemoveFromCart(position int) {
	s.cart.RemoveAt(position)
	s.commit(domain.IntentRemoveFromCart, 0, position)
}

func (s *Service) SelectProduct(p domain.Product) {
	s.nav.SelectProduct(p)
	s.commit(domain.IntentSelectProduct, p.ID, -1)
}

// GoToCatalog shows the catalog page. Entering the page from another view
// resets the filter to its defaults.
func (s *Service) GoToCatalog() {
	if s.nav.View().Kind() != domain.ViewCatalog {
		s.criteria = domain.DefaultFilterCriteria()
	}
	s.nav.GoToCatalog()
	s.commit(domain.IntentGoToCatalog, 0, -1)
}

func (s *Service) GoToCart() {
	s.nav.GoToCart()
	s.commit(domain.IntentGoToCart, 0, -1)
}

func (s *Service) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Version:   s.version,
		View:      s.nav.View(),
		Criteria:  s.criteria,
		Catalog:   catalog.Filter(s.products, s.criteria),
		Cart:      s.cart.Entries(),
		CartCount: s.cart.Len(),
		CartTotal: s.cart.Total(),
	}
	if p, ok := s.nav.Selected(); ok {
		snap.Selected = &p
	}
	return snap
}

// Product looks a catalog product up by its id.
func (s *Service) Product(id int64) (domain.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Products returns the whole catalog in its original order.
func (s *Service) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) commit(intent domain.Intent, productID int64, position int) {
	s.version++
	s.recorder.Record(domain.ClientEvent{
		Intent:     intent,
		ProductID:  productID,
		Position:   position,
		Category:   s.criteria.Category,
		MaxPrice:   s.criteria.MaxPrice,
		View:       s.nav.View().Kind(),
		CartCount:  s.cart.Len(),
		CartTotal:  s.cart.Total(),
		Version:    s.version,
		OccurredAt: s.now(),
	})
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.ClientEvent) {}
