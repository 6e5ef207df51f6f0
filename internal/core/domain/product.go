package domain

type Category string

const (
	CategoryAll   Category = "All"
	CategoryMen   Category = "Men"
	CategoryWomen Category = "Women"
	CategoryKids  Category = "Kids"
)

// Categories returns the closed set of product categories in display order.
func Categories() []Category {
	return []Category{CategoryMen, CategoryWomen, CategoryKids}
}

// Known reports whether c is a product category. [CategoryAll] is a filter
// selector, not a product category.
func (c Category) Known() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return true
	}
	return false
}

type Product struct {
	ID       int64
	Name     string
	Price    int64
	Category Category
	Image    string
}

// A CartEntry is one occurrence of a product placed into the cart.
//
// Entries have no identity beyond their position in the cart.
type CartEntry struct {
	Product Product
}

const (
	DefaultMaxPrice int64 = 2000

	PriceSliderMin  int64 = 500
	PriceSliderMax  int64 = 2000
	PriceSliderStep int64 = 100
)

type FilterCriteria struct {
	Category Category
	MaxPrice int64
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Category: CategoryAll,
		MaxPrice: DefaultMaxPrice,
	}
}

// Match reports whether p passes both the category and the price predicate.
func (c FilterCriteria) Match(p Product) bool {
	categoryMatch := c.Category == CategoryAll || p.Category == c.Category
	priceMatch := p.Price <= c.MaxPrice
	return categoryMatch && priceMatch
}
