package port

import (
	"context"

	"github.com/niksmo/visioncart/internal/core/domain"
)

type (
	runnerContext interface {
		Run(context.Context, context.CancelFunc)
	}

	closer interface {
		Close()
	}
)

// Storefront is the set of intents a view may send to the core.
//
// Implementations are not safe for concurrent use: views must deliver
// intents one at a time in the order the user emitted them.
type Storefront interface {
	SelectCategory(domain.Category)
	SetMaxPrice(int64)
	AddToCart(domain.Product)
	RemoveFromCart(position int)
	SelectProduct(domain.Product)
	GoToCatalog()
	GoToCart()

	Snapshot() domain.Snapshot
	Product(id int64) (domain.Product, bool)
}

type EventRecorder interface {
	Record(domain.ClientEvent)
}

type ClientEventsSink interface {
	SendEvents(context.Context, []domain.ClientEvent) error
}

type ClientEventsRecorder interface {
	EventRecorder
	runnerContext
	closer
}

type SessionStatsProcessor interface {
	runnerContext
	closer
}

type CatalogSource interface {
	LoadProducts(context.Context) ([]domain.Product, error)
}
