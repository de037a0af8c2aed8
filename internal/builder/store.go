package builder

import (
	"errors"
	"fmt"

	"github.com/theographic/theodb/pkg"
)

var ErrCollectionNotFound = errors.New("collection not found")

// Store is the read-only handle over every loaded collection.
type Store struct {
	Collections *pkg.InsertSortMap[string, *Collection]
}

func NewStore(collections ...*Collection) *Store {
	s := &Store{Collections: pkg.NewInsertSortMap[string, *Collection]()}
	for _, c := range collections {
		s.Collections.Set(c.Name, c)
	}
	return s
}

func (s *Store) Collection(name string) (*Collection, error) {
	if !s.Collections.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return s.Collections.Get(name), nil
}

// Lookup resolves key in collection through the named index.
func (s *Store) Lookup(collection, index string, key any) (*Record, bool) {
	if !s.Collections.Has(collection) {
		return nil, false
	}
	return s.Collections.Get(collection).Lookup(index, key)
}

// Stats returns the record count per collection in load order.
func (s *Store) Stats() *pkg.Object {
	stats := pkg.NewObject()
	for _, c := range s.Collections.Values() {
		stats.Set(c.Name, c.Len())
	}
	return stats
}
