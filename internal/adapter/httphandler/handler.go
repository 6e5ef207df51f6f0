package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
)

// GET    v1/storefront                  (200 OK)
// POST   v1/filter/category    JSON     (200 OK, 400 Bad request)
// POST   v1/filter/max-price   JSON     (200 OK, 400 Bad request)
// POST   v1/cart               JSON     (200 OK, 400 Bad request, 404 Not found)
// DELETE v1/cart/{position}             (200 OK, 400 Bad request)
// POST   v1/products/{id}/select        (200 OK, 400 Bad request, 404 Not found)
// POST   v1/navigation/catalog          (200 OK)
// POST   v1/navigation/cart             (200 OK)
//
// Every successful response carries the storefront snapshot.

// A StorefrontHandler delivers intents to the storefront one at a time.
type StorefrontHandler struct {
	mu sync.Mutex
	sf port.Storefront
}

func RegisterStorefront(mux *http.ServeMux, sf port.Storefront) {
	h := &StorefrontHandler{sf: sf}
	mux.HandleFunc("GET /v1/storefront", h.GetStorefront)
	mux.HandleFunc("POST /v1/filter/category", h.PostCategory)
	mux.HandleFunc("POST /v1/filter/max-price", h.PostMaxPrice)
	mux.HandleFunc("POST /v1/cart", h.PostCart)
	mux.HandleFunc("DELETE /v1/cart/{position}", h.DeleteCartEntry)
	mux.HandleFunc("POST /v1/products/{id}/select", h.PostSelectProduct)
	mux.HandleFunc("POST /v1/navigation/catalog", h.PostGoToCatalog)
	mux.HandleFunc("POST /v1/navigation/cart", h.PostGoToCart)
}

func (h *StorefrontHandler) GetStorefront(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetStorefront"
	h.apply(w, op, nil)
}

func (h *StorefrontHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostCategory"

	var req CategoryRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	if req.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	h.apply(w, op, func(sf port.Storefront) {
		sf.SelectCategory(domain.Category(req.Category))
	})
}

func (h *StorefrontHandler) PostMaxPrice(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostMaxPrice"

	var req MaxPriceRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	if req.MaxPrice == nil {
		http.Error(w, "max_price is required", http.StatusBadRequest)
		return
	}

	h.apply(w, op, func(sf port.Storefront) {
		sf.SetMaxPrice(*req.MaxPrice)
	})
}

func (h *StorefrontHandler) PostCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostCart"

	var req AddToCartRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	h.applyProduct(w, op, req.ProductID, func(sf port.Storefront, p domain.Product) {
		sf.AddToCart(p)
	})
}

func (h *StorefrontHandler) DeleteCartEntry(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.DeleteCartEntry"

	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		slog.Warn("failed to parse position", "op", op, "err", err)
		return
	}

	h.apply(w, op, func(sf port.Storefront) {
		sf.RemoveFromCart(position)
	})
}

func (h *StorefrontHandler) PostSelectProduct(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostSelectProduct"

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		slog.Warn("failed to parse product id", "op", op, "err", err)
		return
	}

	h.applyProduct(w, op, id, func(sf port.Storefront, p domain.Product) {
		sf.SelectProduct(p)
	})
}

func (h *StorefrontHandler) PostGoToCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostGoToCatalog"
	h.apply(w, op, port.Storefront.GoToCatalog)
}

func (h *StorefrontHandler) PostGoToCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostGoToCart"
	h.apply(w, op, port.Storefront.GoToCart)
}

func (h *StorefrontHandler) decode(
	w http.ResponseWriter, r *http.Request, op string, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		slog.Warn("failed to parse JSON", "op", op, "err", err)
		return false
	}
	return true
}

// apply runs intent under the handler lock and responds with the snapshot
// it produced. A nil intent only reads.
func (h *StorefrontHandler) apply(
	w http.ResponseWriter, op string, intent func(port.Storefront),
) {
	h.mu.Lock()
	if intent != nil {
		intent(h.sf)
	}
	snap := h.sf.Snapshot()
	h.mu.Unlock()

	h.writeSnapshot(w, op, snap)
}

func (h *StorefrontHandler) applyProduct(
	w http.ResponseWriter,
	op string,
	id int64,
	intent func(port.Storefront, domain.Product),
) {
	h.mu.Lock()
	p, ok := h.sf.Product(id)
	if !ok {
		h.mu.Unlock()
		http.Error(w, "product not found", http.StatusNotFound)
		slog.Warn("unknown product", "op", op, "productID", id)
		return
	}
	intent(h.sf, p)
	snap := h.sf.Snapshot()
	h.mu.Unlock()

	h.writeSnapshot(w, op, snap)
}

func (h *StorefrontHandler) writeSnapshot(
	w http.ResponseWriter, op string, snap domain.Snapshot,
) {
	log := slog.With("op", op)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(fromDomainSnapshot(snap)); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}
	log.Debug("served", "version", snap.Version)
}
