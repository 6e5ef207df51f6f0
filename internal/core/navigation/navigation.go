package navigation

import "github.com/niksmo/visioncart/internal/core/domain"

// A State holds the current view and the last selected product.
//
// Every transition is allowed from every view.
type State struct {
	view     domain.View
	selected *domain.Product
}

// New returns a state on the catalog view with nothing selected.
func New() *State {
	return &State{view: domain.CatalogView()}
}

func (s *State) View() domain.View {
	return s.view
}

// Selected returns the last selected product. Leaving the details view
// does not clear it.
func (s *State) Selected() (domain.Product, bool) {
	if s.selected == nil {
		return domain.Product{}, false
	}
	return *s.selected, true
}

func (s *State) GoToCatalog() {
	s.view = domain.CatalogView()
}

func (s *State) GoToCart() {
	s.view = domain.CartView()
}

// SelectProduct remembers p and shows its details page.
func (s *State) SelectProduct(p domain.Product) {
	s.selected = &p
	s.view = domain.DetailsView(p)
}
