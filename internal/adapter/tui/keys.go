package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/niksmo/visioncart/internal/core/domain"
)

var _ help.KeyMap = keyMap{}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Add       key.Binding
	Remove    key.Binding
	Category  key.Binding
	PriceDown key.Binding
	PriceUp   key.Binding
	Cart      key.Binding
	Catalog   key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to cart"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Category: key.NewBinding(
			key.WithKeys("tab", "c"),
			key.WithHelp("tab", "category"),
		),
		PriceDown: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("←", "max price -"),
		),
		PriceUp: key.NewBinding(
			key.WithKeys("right", "+"),
			key.WithHelp("→", "max price +"),
		),
		Cart: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "cart"),
		),
		Catalog: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "catalog"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// forView enables only the bindings that act on the given page.
func (k keyMap) forView(view domain.ViewKind) keyMap {
	catalog := view == domain.ViewCatalog
	cart := view == domain.ViewCart
	details := view == domain.ViewDetails

	k.Up.SetEnabled(catalog || cart)
	k.Down.SetEnabled(catalog || cart)
	k.Select.SetEnabled(catalog)
	k.Add.SetEnabled(catalog || details)
	k.Remove.SetEnabled(cart)
	k.Category.SetEnabled(catalog)
	k.PriceDown.SetEnabled(catalog)
	k.PriceUp.SetEnabled(catalog)
	k.Cart.SetEnabled(!cart)
	k.Catalog.SetEnabled(!catalog)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Add, k.Remove,
		k.Category, k.PriceDown, k.PriceUp,
		k.Cart, k.Catalog, k.Quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Add, k.Remove},
		{k.Category, k.PriceDown, k.PriceUp},
		{k.Cart, k.Catalog, k.Quit},
	}
}
