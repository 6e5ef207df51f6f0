package domain

// A Snapshot is a read-only copy of the storefront state handed to views.
type Snapshot struct {
	Version   uint64
	View      View
	Criteria  FilterCriteria
	Catalog   []Product
	Cart      []CartEntry
	CartCount int
	CartTotal int64
	Selected  *Product
}
