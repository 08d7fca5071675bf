// Package catalog provides the read-only product catalogue and its loaders.
package catalog

import (
	"fmt"
	"strings"

	"real-preco/internal/model"
)

const (
	// OtherGroup names the group for products without a category or subcategory.
	OtherGroup = "Outros"

	// DealsCategory is always listed first among categories.
	DealsCategory = "Ofertas"
)

// Reduced is the subset of product fields shared with the text matching service.
type Reduced struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Catalog is an immutable, ordered set of products keyed by ID.
type Catalog struct {
	products []model.Product
	index    map[int]int
}

// New validates products and builds a catalogue preserving their order.
func New(products []model.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]model.Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
	}

	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if _, exists := c.index[p.ID]; exists {
			return nil, fmt.Errorf("product %d: duplicate id %d", i, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

func validateProduct(p model.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("id %d: name is required", p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("id %d: price must be non-negative", p.ID)
	}
	if p.OriginalPrice != nil && !p.OriginalPrice.GreaterThan(p.Price) {
		return fmt.Errorf("id %d: original price must exceed price", p.ID)
	}
	return nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns all products in catalogue order.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks up a product.
func (c *Catalog) ByID(id int) (model.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

// Reduced returns the matching-service view of every product.
func (c *Catalog) Reduced() []Reduced {
	out := make([]Reduced, len(c.products))
	for i, p := range c.products {
		out[i] = Reduced{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
		}
	}
	return out
}

// Select returns the products whose IDs are in ids, in catalogue order.
// Unknown IDs are ignored.
func (c *Catalog) Select(ids []int) []model.Product {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; ok {
			wanted[id] = struct{}{}
		}
	}

	out := make([]model.Product, 0, len(wanted))
	for _, p := range c.products {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Search returns products whose name contains term, ignoring case.
// An empty term matches everything.
func (c *Catalog) Search(term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// Deals returns discounted products.
func (c *Catalog) Deals() []model.Product {
	var out []model.Product
	for _, p := range c.products {
		if p.OnSale() {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order, with Ofertas first.
func (c *Catalog) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		if p.Category == DealsCategory {
			out = append([]string{p.Category}, out...)
			continue
		}
		out = append(out, p.Category)
	}
	return out
}

// Category builds the drilldown view for a category, grouped by subcategory.
// ok is false when the category has no products.
func (c *Catalog) Category(name string) (view model.CategoryView, ok bool) {
	var products []model.Product
	for _, p := range c.products {
		if p.Category == name {
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		return model.CategoryView{}, false
	}

	view = model.CategoryView{
		Category:      name,
		Subcategories: []string{},
		Groups:        GroupBy(products, func(p model.Product) string { return p.Subcategory }),
	}
	for _, g := range view.Groups {
		if g.Name != OtherGroup {
			view.Subcategories = append(view.Subcategories, g.Name)
		}
	}
	return view, true
}

// GroupByCategory groups products by category in first-seen order.
func GroupByCategory(products []model.Product) []model.ProductGroup {
	return GroupBy(products, func(p model.Product) string { return p.Category })
}

// GroupBy groups products by key in first-seen order. Empty keys fall into OtherGroup.
func GroupBy(products []model.Product, key func(model.Product) string) []model.ProductGroup {
	groups := []model.ProductGroup{}
	index := make(map[string]int)
	for _, p := range products {
		k := key(p)
		if k == "" {
			k = OtherGroup
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.ProductGroup{Name: k})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
