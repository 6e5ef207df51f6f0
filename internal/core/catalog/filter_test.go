package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/niksmo/visioncart/internal/core/catalog"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Classic Black Frame", Price: 1299, Category: domain.CategoryMen},
		{ID: 2, Name: "Round Blue Frame", Price: 1599, Category: domain.CategoryWomen},
		{ID: 3, Name: "Kids Flexible Frame", Price: 999, Category: domain.CategoryKids},
		{ID: 4, Name: "Kids Flexible Frame", Price: 999, Category: domain.CategoryKids},
	}
}

func ids(ps []domain.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Run("KidsUnderDefaultMax", func(t *testing.T) {
		c := testCatalog()[:3]
		got := catalog.Filter(c, domain.FilterCriteria{
			Category: domain.CategoryKids, MaxPrice: 2000,
		})
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("AllMatchesEveryCategory", func(t *testing.T) {
		got := catalog.Filter(testCatalog(), domain.DefaultFilterCriteria())
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
	})

	t.Run("PriceBoundIsInclusive", func(t *testing.T) {
		got := catalog.Filter(testCatalog(), domain.FilterCriteria{
			Category: domain.CategoryAll, MaxPrice: 1299,
		})
		assert.Equal(t, []int64{1, 3, 4}, ids(got))
	})

	t.Run("BoundBelowEveryPrice", func(t *testing.T) {
		got := catalog.Filter(testCatalog(), domain.FilterCriteria{
			Category: domain.CategoryAll, MaxPrice: -1,
		})
		assert.Empty(t, got)
	})

	t.Run("UnknownCategoryMatchesNothing", func(t *testing.T) {
		got := catalog.Filter(testCatalog(), domain.FilterCriteria{
			Category: "Pets", MaxPrice: 2000,
		})
		assert.Empty(t, got)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		got := catalog.Filter(nil, domain.DefaultFilterCriteria())
		assert.Empty(t, got)
	})

	t.Run("CategoryAndPriceAreConjunctive", func(t *testing.T) {
		got := catalog.Filter(testCatalog(), domain.FilterCriteria{
			Category: domain.CategoryWomen, MaxPrice: 1500,
		})
		assert.Empty(t, got)
	})
}

func TestFilterProperties(t *testing.T) {
	c := testCatalog()
	criteria := []domain.FilterCriteria{
		domain.DefaultFilterCriteria(),
		{Category: domain.CategoryMen, MaxPrice: 2000},
		{Category: domain.CategoryKids, MaxPrice: 999},
		{Category: domain.CategoryKids, MaxPrice: 998},
		{Category: domain.CategoryAll, MaxPrice: 1000},
		{Category: "", MaxPrice: 5000},
	}

	for _, crit := range criteria {
		got := catalog.Filter(c, crit)

		for _, p := range got {
			assert.True(t, crit.Match(p), "%+v must match %+v", p, crit)
		}

		var want []int64
		for _, p := range c {
			if crit.Match(p) {
				want = append(want, p.ID)
			}
		}
		if want == nil {
			want = []int64{}
		}
		assert.Equal(t, want, ids(got), "criteria %+v", crit)

		again := catalog.Filter(c, crit)
		if diff := cmp.Diff(got, again); diff != "" {
			t.Errorf("second call differs (-first +second):\n%s", diff)
		}
	}
}

func TestFilterDoesNotAliasCatalog(t *testing.T) {
	c := testCatalog()
	got := catalog.Filter(c, domain.DefaultFilterCriteria())
	got[0].Name = "changed"
	assert.Equal(t, "Classic Black Frame", c[0].Name)
}
