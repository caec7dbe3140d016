// Package catalog loads the products offered on the listing page.
package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type file struct {
	Products []product `toml:"product"`
}

type product struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Slug     string `toml:"slug"`
	Image    string `toml:"image"`
	Price    string `toml:"price"`
	Currency string `toml:"currency"`
}

type Catalog struct {
	products []domain.CartItem
	byID     map[uuid.UUID]int
	bySlug   map[string]int
}

func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var raw file
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("toml.Decode: %w", err)
	}

	c := &Catalog{
		byID:   make(map[uuid.UUID]int, len(raw.Products)),
		bySlug: make(map[string]int, len(raw.Products)),
	}

	for i, p := range raw.Products {
		item, err := p.toCartItem()
		if err != nil {
			return nil, fmt.Errorf("product[%d]: %w", i, err)
		}
		if _, dup := c.byID[item.ProductID]; dup {
			return nil, fmt.Errorf("product[%d]: duplicate id %s", i, item.ProductID)
		}
		if _, dup := c.bySlug[item.Slug]; dup {
			return nil, fmt.Errorf("product[%d]: duplicate slug %q", i, item.Slug)
		}

		c.byID[item.ProductID] = len(c.products)
		c.bySlug[item.Slug] = len(c.products)
		c.products = append(c.products, item)
	}

	return c, nil
}

func (p product) toCartItem() (domain.CartItem, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("id[%s] is not valid: %w", p.ID, err)
	}

	amount, err := decimal.NewFromString(p.Price)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("price[%s] is not valid: %w", p.Price, err)
	}

	unit := currency.USD
	if p.Currency != "" {
		unit, err = currency.ParseISO(p.Currency)
		if err != nil {
			return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", p.Currency, err)
		}
	}

	item := domain.CartItem{
		ProductID: id,
		Name:      p.Name,
		Slug:      p.Slug,
		Image:     p.Image,
		Price:     domain.Money{Amount: amount, Currency: unit},
		Qty:       1,
	}
	if err := item.Validate(); err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}

// Products returns the catalog in file order. Every product has quantity 1,
// ready to be offered to the cart.
func (c *Catalog) Products() []domain.CartItem {
	return append([]domain.CartItem(nil), c.products...)
}

func (c *Catalog) ByID(id uuid.UUID) (domain.CartItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.CartItem{}, false
	}
	return c.products[i], true
}

func (c *Catalog) BySlug(slug string) (domain.CartItem, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.CartItem{}, false
	}
	return c.products[i], true
}
