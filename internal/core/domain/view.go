package domain

type ViewKind string

const (
	ViewNone    ViewKind = ""
	ViewCatalog ViewKind = "catalog"
	ViewCart    ViewKind = "cart"
	ViewDetails ViewKind = "details"
)

// A View is the page currently presented to the user.
//
// The details variant carries the product it shows, so a details page
// without a product cannot be built through [DetailsView]. The zero View
// renders nothing.
type View struct {
	kind    ViewKind
	product Product
}

func CatalogView() View {
	return View{kind: ViewCatalog}
}

func CartView() View {
	return View{kind: ViewCart}
}

func DetailsView(p Product) View {
	return View{kind: ViewDetails, product: p}
}

func (v View) Kind() ViewKind {
	return v.kind
}

// Product returns the product shown by a details view.
func (v View) Product() (Product, bool) {
	if v.kind != ViewDetails {
		return Product{}, false
	}
	return v.product, true
}

func (v View) String() string {
	if v.kind == ViewNone {
		return "none"
	}
	return string(v.kind)
}
