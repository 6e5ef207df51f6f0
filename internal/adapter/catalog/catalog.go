package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	ErrDuplicateID     = errors.New("duplicate product id")
	ErrNegativePrice   = errors.New("negative product price")
	ErrUnknownCategory = errors.New("unknown product category")
	ErrEmptyName       = errors.New("empty product name")
	ErrInvalidID       = errors.New("product id must be positive")
)

var _ port.CatalogSource = (*FileSource)(nil)

type (
	document struct {
		Products []product `yaml:"products"`
	}

	product struct {
		ID       int64  `yaml:"id"`
		Name     string `yaml:"name"`
		Price    int64  `yaml:"price"`
		Category string `yaml:"category"`
		Image    string `yaml:"image"`
	}
)

// A FileSource reads the static catalog from a YAML file.
//
// An empty path selects the built-in catalog.
type FileSource struct {
	path string
}

func NewFileSource(path string) FileSource {
	return FileSource{path}
}

func (s FileSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "FileSource.LoadProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var r io.Reader = bytes.NewReader(defaultCatalog)
	if s.path != "" {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		defer f.Close()
		r = f
	}

	ps, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog loaded", "path", s.path, "nProducts", len(ps))
	return ps, nil
}

// Decode parses and validates a YAML catalog document.
func Decode(r io.Reader) ([]domain.Product, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	ps := make([]domain.Product, 0, len(doc.Products))
	seen := make(map[int64]struct{}, len(doc.Products))
	for i, p := range doc.Products {
		v := p.toDomain()
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("product #%d (id %d): %w", i, v.ID, err)
		}
		if _, ok := seen[v.ID]; ok {
			return nil, fmt.Errorf("product #%d: %w: %d", i, ErrDuplicateID, v.ID)
		}
		seen[v.ID] = struct{}{}
		ps = append(ps, v)
	}
	return ps, nil
}

func validate(p domain.Product) error {
	switch {
	case p.ID <= 0:
		return ErrInvalidID
	case p.Name == "":
		return ErrEmptyName
	case p.Price < 0:
		return ErrNegativePrice
	case !p.Category.Known():
		return fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category)
	}
	return nil
}

func (p product) toDomain() domain.Product {
	return domain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: domain.Category(p.Category),
		Image:    p.Image,
	}
}
