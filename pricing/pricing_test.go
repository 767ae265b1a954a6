package pricing

import (
	"testing"

	"github.com/inkpress/bookshop-backend-go/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveKnownRegion(t *testing.T) {
	r := NewResolver()

	prices := r.Resolve("US")
	assert.Equal(t, "USD", prices.Currency)
	assert.Greater(t, prices.Hardcover, prices.Paperback, "hardcover always costs more")
	assert.Greater(t, prices.Paperback, prices.Ebook)
}

func TestResolveIsCaseAndSpaceInsensitive(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, r.Resolve("IN"), r.Resolve(" in "))
	assert.Equal(t, r.Resolve("GB"), r.Resolve("gb"))
}

func TestResolveFallsBackToHomeRegion(t *testing.T) {
	r := NewResolver()
	home := r.Resolve("IN")

	assert.Equal(t, home, r.Resolve(""))
	assert.Equal(t, home, r.Resolve("ZZ"))
}

func TestPricesFor(t *testing.T) {
	p := Prices{Paperback: 499, Hardcover: 799, Ebook: 199}

	assert.Equal(t, 499, p.For(models.VariantPaperback))
	assert.Equal(t, 799, p.For(models.VariantHardcover))
	assert.Equal(t, 199, p.For(models.VariantEbook))
	assert.Zero(t, p.For("audiobook"))
}
