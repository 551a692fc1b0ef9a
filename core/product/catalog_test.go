package product

import (
	"testing"

	"github.com/carriereplus/storefront/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestSeedIsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Seed() {
		require.NoError(t, validate.Check(p), "product %s", p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestFetch(t *testing.T) {
	c := NewCatalog(Seed())

	p, err := c.Fetch("1")
	require.NoError(t, err)
	assert.Equal(t, "19.99", p.Price.StringFixed(2))

	_, err = c.Fetch("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	c := NewCatalog(Seed())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "all", filter: Filter{}, want: []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{name: "category", filter: Filter{Category: "templates"}, want: []string{"2", "4", "7"}},
		{name: "type", filter: Filter{Type: Tool}, want: []string{"5"}},
		{name: "query is case insensitive", filter: Filter{Query: "  LINKEDIN "}, want: []string{"6"}},
		{name: "query matches description", filter: Filter{Query: "recruteurs"}, want: []string{"2", "6"}},
		{name: "combined", filter: Filter{Category: "ebooks", Query: "guide"}, want: []string{"1", "8"}},
		{name: "no match", filter: Filter{Query: "cobol"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.List(tt.filter)))
		})
	}
}

func TestDiscount(t *testing.T) {
	c := NewCatalog(Seed())

	onSale, _ := c.Fetch("2")
	assert.Equal(t, "5.00", onSale.Discount().StringFixed(2))

	regular, _ := c.Fetch("1")
	assert.True(t, regular.Discount().IsZero())
}
