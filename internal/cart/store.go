// Package cart holds the shopping cart aggregate.
//
// Totals are recomputed from the lines on every read and never cached.
package cart

import (
	"strconv"
	"strings"

	"real-preco/internal/model"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a single line can hold.
const MaxQuantity = 9999

// Line is a single product in the cart with its quantity.
type Line struct {
	Product  model.Product
	Quantity int
}

// Total returns quantity times unit price for the line.
func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store keeps cart lines in insertion order, one line per product ID.
// It is not safe for concurrent use; callers serialise access.
type Store struct {
	lines []Line
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem increments the product's line or appends a new line with quantity 1.
// A line already at MaxQuantity is left unchanged.
func (s *Store) AddItem(product model.Product) {
	if i := s.indexOf(product.ID); i >= 0 {
		if s.lines[i].Quantity < MaxQuantity {
			s.lines[i].Quantity++
		}
		return
	}
	s.lines = append(s.lines, Line{Product: product, Quantity: 1})
}

// AddAll adds each product not yet in the cart exactly once and returns how many
// lines were added. Products already in the cart keep their quantity.
func (s *Store) AddAll(products []model.Product) int {
	added := 0
	for _, p := range products {
		if s.Contains(p.ID) {
			continue
		}
		s.lines = append(s.lines, Line{Product: p, Quantity: 1})
		added++
	}
	return added
}

// RemoveItem deletes the line for productID. Absent IDs are ignored.
func (s *Store) RemoveItem(productID int) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1 remove
// the line and quantities above MaxQuantity are capped. Unknown product IDs are
// ignored.
func (s *Store) UpdateQuantity(productID, quantity int) {
	if quantity < 1 {
		s.RemoveItem(productID)
		return
	}
	quantity = min(quantity, MaxQuantity)
	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = quantity
	}
}

// UpdateQuantityInput applies raw user input as a quantity. Input that is not a
// whole number, or exceeds MaxQuantity, is rejected and the previous quantity is
// kept.
func (s *Store) UpdateQuantityInput(productID int, raw string) bool {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || quantity > MaxQuantity {
		return false
	}
	s.UpdateQuantity(productID, quantity)
	return true
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy of the cart lines in display order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Contains reports whether the cart has a line for productID.
func (s *Store) Contains(productID int) bool {
	return s.indexOf(productID) >= 0
}

// Quantity returns the quantity for productID, or 0 when absent.
func (s *Store) Quantity(productID int) int {
	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	return TotalItems(s.lines)
}

// TotalPrice is the sum of quantity times price over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	return TotalPrice(s.lines)
}

func (s *Store) indexOf(productID int) int {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// TotalItems sums the quantities of lines.
func TotalItems(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice sums the line totals of lines.
func TotalPrice(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
