package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
)

const (
	brand       = "VisionCart"
	sliderWidth = 16
)

// Model renders the storefront in the terminal and turns key presses into
// storefront intents. The bubbletea update loop delivers intents one at a
// time.
type Model struct {
	sf         port.Storefront
	keys       keyMap
	help       help.Model
	styles     Styles
	currency   string
	catCursor  int
	cartCursor int
	width      int
}

func NewModel(sf port.Storefront, currency string) Model {
	return Model{
		sf:       sf,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(),
		currency: currency,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(brand)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.sf.Snapshot()
	keys := m.keys.forView(snap.View.Kind())

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Cart):
		m.sf.GoToCart()
		return m, tea.SetWindowTitle(brand)

	case key.Matches(msg, keys.Catalog):
		m.sf.GoToCatalog()
		m.catCursor = 0
		return m, tea.SetWindowTitle(brand)
	}

	switch snap.View.Kind() {
	case domain.ViewCatalog:
		return m.updateCatalog(msg, keys, snap)
	case domain.ViewCart:
		return m.updateCart(msg, keys, snap)
	case domain.ViewDetails:
		return m.updateDetails(msg, keys, snap)
	}
	return m, nil
}

func (m Model) updateCatalog(
	msg tea.KeyMsg, keys keyMap, snap domain.Snapshot,
) (tea.Model, tea.Cmd) {
	m.catCursor = clamp(m.catCursor, len(snap.Catalog))

	switch {
	case key.Matches(msg, keys.Up):
		m.catCursor = max(m.catCursor-1, 0)
	case key.Matches(msg, keys.Down):
		m.catCursor = clamp(m.catCursor+1, len(snap.Catalog))
	case key.Matches(msg, keys.Select):
		if len(snap.Catalog) == 0 {
			return m, nil
		}
		p := snap.Catalog[m.catCursor]
		m.sf.SelectProduct(p)
		return m, tea.SetWindowTitle(p.Name)
	case key.Matches(msg, keys.Add):
		if len(snap.Catalog) == 0 {
			return m, nil
		}
		m.sf.AddToCart(snap.Catalog[m.catCursor])
	case key.Matches(msg, keys.Category):
		m.sf.SelectCategory(nextCategory(snap.Criteria.Category))
		m.catCursor = 0
	case key.Matches(msg, keys.PriceDown):
		m.sf.SetMaxPrice(stepPrice(snap.Criteria.MaxPrice, -domain.PriceSliderStep))
		m.catCursor = 0
	case key.Matches(msg, keys.PriceUp):
		m.sf.SetMaxPrice(stepPrice(snap.Criteria.MaxPrice, domain.PriceSliderStep))
		m.catCursor = 0
	}
	return m, nil
}

func (m Model) updateCart(
	msg tea.KeyMsg, keys keyMap, snap domain.Snapshot,
) (tea.Model, tea.Cmd) {
	m.cartCursor = clamp(m.cartCursor, len(snap.Cart))

	switch {
	case key.Matches(msg, keys.Up):
		m.cartCursor = max(m.cartCursor-1, 0)
	case key.Matches(msg, keys.Down):
		m.cartCursor = clamp(m.cartCursor+1, len(snap.Cart))
	case key.Matches(msg, keys.Remove):
		m.sf.RemoveFromCart(m.cartCursor)
		m.cartCursor = clamp(m.cartCursor, len(snap.Cart)-1)
	}
	return m, nil
}

func (m Model) updateDetails(
	msg tea.KeyMsg, keys keyMap, snap domain.Snapshot,
) (tea.Model, tea.Cmd) {
	p, ok := snap.View.Product()
	if !ok {
		return m, nil
	}
	if key.Matches(msg, keys.Add) {
		m.sf.AddToCart(p)
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.sf.Snapshot()

	var sb strings.Builder
	sb.WriteString(m.header(snap))
	sb.WriteString("\n\n")

	var page string
	switch snap.View.Kind() {
	case domain.ViewCatalog:
		page = m.catalogPage(snap)
	case domain.ViewCart:
		page = m.cartPage(snap)
	case domain.ViewDetails:
		page = m.detailsPage(snap)
	}
	sb.WriteString(page)

	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys.forView(snap.View.Kind())))
	return sb.String()
}

func (m Model) header(snap domain.Snapshot) string {
	left := m.styles.Brand.Render(brand)
	right := fmt.Sprintf("Cart (%d)", snap.CartCount)
	gap := max(m.width-len(brand)-len(right)-2, 4)
	return m.styles.Bar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) catalogPage(snap domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Eyeglasses Collection"))
	sb.WriteString("\n")

	sb.WriteString("Category: ")
	options := append([]domain.Category{domain.CategoryAll}, domain.Categories()...)
	for i, c := range options {
		if i > 0 {
			sb.WriteString(" ")
		}
		if c == snap.Criteria.Category {
			sb.WriteString(m.styles.Active.Render(string(c)))
			continue
		}
		sb.WriteString(m.styles.Muted.Render(string(c)))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Max Price: %s  %s\n\n",
		m.price(snap.Criteria.MaxPrice), m.slider(snap.Criteria.MaxPrice)))

	if len(snap.Catalog) == 0 {
		sb.WriteString(m.styles.Muted.Render("No products match the filters."))
		return sb.String()
	}

	cursor := clamp(m.catCursor, len(snap.Catalog))
	for i, p := range snap.Catalog {
		sb.WriteString(m.line(i == cursor, p))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (m Model) cartPage(snap domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Your Cart"))
	sb.WriteString("\n")

	if len(snap.Cart) == 0 {
		sb.WriteString("Your cart is empty.")
		return sb.String()
	}

	cursor := clamp(m.cartCursor, len(snap.Cart))
	for i, e := range snap.Cart {
		sb.WriteString(m.line(i == cursor, e.Product))
		if i == cursor {
			sb.WriteString("  " + m.styles.Danger.Render("Remove (x)"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Divider.Render(strings.Repeat("─", 40)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Total.Render(
		fmt.Sprintf("%-30s%s", "Total", m.price(snap.CartTotal)),
	))
	return sb.String()
}

// detailsPage renders nothing when the view carries no product.
func (m Model) detailsPage(snap domain.Snapshot) string {
	p, ok := snap.View.Product()
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Price: %s\n", m.styles.Price.Render(m.price(p.Price))))
	sb.WriteString(fmt.Sprintf("Category: %s\n", p.Category))
	sb.WriteString(m.styles.Muted.Render("Image: " + p.Image))
	return sb.String()
}

func (m Model) line(selected bool, p domain.Product) string {
	name := fmt.Sprintf("%-24s", p.Name)
	price := m.styles.Price.Render(m.price(p.Price))
	if selected {
		return m.styles.Cursor.Render("> ") + m.styles.Selected.Render(name) + " " + price
	}
	return "  " + m.styles.Body.Render(name) + " " + price
}

func (m Model) price(v int64) string {
	return fmt.Sprintf("%s%d", m.currency, v)
}

func (m Model) slider(v int64) string {
	span := domain.PriceSliderMax - domain.PriceSliderMin
	filled := int((min(max(v, domain.PriceSliderMin), domain.PriceSliderMax) -
		domain.PriceSliderMin) * sliderWidth / span)
	return m.styles.Slider.Render(strings.Repeat("█", filled)) +
		m.styles.Muted.Render(strings.Repeat("░", sliderWidth-filled))
}

func nextCategory(c domain.Category) domain.Category {
	options := append([]domain.Category{domain.CategoryAll}, domain.Categories()...)
	for i, o := range options {
		if o == c {
			return options[(i+1)%len(options)]
		}
	}
	return domain.CategoryAll
}

func stepPrice(current, delta int64) int64 {
	return min(max(current+delta, domain.PriceSliderMin), domain.PriceSliderMax)
}

// clamp keeps a cursor within a list of n items.
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	return min(i, n-1)
}
