// Package venues holds the static venue catalog: the single source of
// truth for venue names and seat capacities. Every consumer (availability
// checks, dropdowns, legends) must read from it rather than carrying its
// own copy.
package venues

import (
	"examsched/pkg/model"
)

// Catalog is an ordered name→capacity table. It is immutable for the
// lifetime of the process; catalog changes are a configuration concern.
type Catalog struct {
	venues []model.Venue
	byName map[string]int
}

// NewCatalog builds a catalog preserving declaration order. A duplicated
// name keeps its first capacity.
func NewCatalog(entries []model.Venue) *Catalog {
	c := &Catalog{
		venues: make([]model.Venue, 0, len(entries)),
		byName: make(map[string]int, len(entries)),
	}
	for _, v := range entries {
		if _, exists := c.byName[v.Name]; exists {
			continue
		}
		c.byName[v.Name] = v.Capacity
		c.venues = append(c.venues, v)
	}
	return c
}

// Venues returns the catalog in declaration order.
func (c *Catalog) Venues() []model.Venue {
	out := make([]model.Venue, len(c.venues))
	copy(out, c.venues)
	return out
}

// Capacity looks up the seat count for a venue. Unknown venues are not
// an error at this layer; they report absent.
func (c *Catalog) Capacity(name string) (int, bool) {
	capacity, ok := c.byName[name]
	return capacity, ok
}

func (c *Catalog) Len() int {
	return len(c.venues)
}
