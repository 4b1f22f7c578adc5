package ctf

// TitledCollection is an ordered collection of titled resources with linear
// lookup by title or id. Order matches the server response.
type TitledCollection[T Titled] struct {
	items []T
}

// NewTitledCollection wraps a decoded item slice. A nil slice yields an
// empty, usable collection.
func NewTitledCollection[T Titled](items []T) *TitledCollection[T] {
	return &TitledCollection[T]{items: items}
}

// Len returns the number of entries.
func (c *TitledCollection[T]) Len() int {
	return len(c.items)
}

// At returns a pointer to the entry at index i.
func (c *TitledCollection[T]) At(i int) *T {
	return &c.items[i]
}

// Items returns the underlying slice in server order.
func (c *TitledCollection[T]) Items() []T {
	return c.items
}

// ByTitle returns the first entry with the given title, or nil.
func (c *TitledCollection[T]) ByTitle(title string) *T {
	for i := range c.items {
		if c.items[i].GetTitle() == title {
			return &c.items[i]
		}
	}

	return nil
}

// ByID returns the first entry with the given id, or nil.
func (c *TitledCollection[T]) ByID(id string) *T {
	for i := range c.items {
		if c.items[i].GetID() == id {
			return &c.items[i]
		}
	}

	return nil
}

// Titles returns the titles in collection order. The result is a snapshot
// taken at call time; the collection itself is immutable after decoding, so
// a live view would be indistinguishable.
func (c *TitledCollection[T]) Titles() []string {
	titles := make([]string, 0, len(c.items))
	for i := range c.items {
		titles = append(titles, c.items[i].GetTitle())
	}

	return titles
}
