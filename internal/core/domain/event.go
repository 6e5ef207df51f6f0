package domain

import "time"

type Intent string

const (
	IntentSelectCategory Intent = "select_category"
	IntentSetMaxPrice    Intent = "set_max_price"
	IntentAddToCart      Intent = "add_to_cart"
	IntentRemoveFromCart Intent = "remove_from_cart"
	IntentSelectProduct  Intent = "select_product"
	IntentGoToCatalog    Intent = "go_to_catalog"
	IntentGoToCart       Intent = "go_to_cart"
)

// A ClientEvent records one processed intent together with the state it
// produced. Catalog product ids are positive, so ProductID is zero only when
// the intent has no product. Position is -1 when the intent has none.
type ClientEvent struct {
	SessionID  string
	Intent     Intent
	ProductID  int64
	Position   int
	Category   Category
	MaxPrice   int64
	View       ViewKind
	CartCount  int
	CartTotal  int64
	Version    uint64
	OccurredAt time.Time
}

// SessionStats aggregates the client events of one session.
type SessionStats struct {
	Intents       int64
	Adds          int64
	Removes       int64
	Selections    int64
	LastCartTotal int64
}

// Apply folds evt into the stats.
func (s SessionStats) Apply(evt ClientEvent) SessionStats {
	s.Intents++
	switch evt.Intent {
	case IntentAddToCart:
		s.Adds++
	case IntentRemoveFromCart:
		s.Removes++
	case IntentSelectProduct:
		s.Selections++
	}
	s.LastCartTotal = evt.CartTotal
	return s
}
