// Package memstore provides an in-memory DocumentStore used in tests and
// local development. It honours the same contract as the postgres
// adapter: Create fails when the identity exists and BatchCommit is
// all-or-nothing.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"minar-ads/internal/core/domain"
	"minar-ads/internal/core/port"
)

// Store keeps every collection as a map of JSON documents guarded by a
// single mutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

func (s *Store) collection(name string) map[string][]byte {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string][]byte)
		s.collections[name] = c
	}
	return c
}

// Create stores a new document, failing with port.ErrAlreadyExists when
// the identity is taken.
func (s *Store) Create(_ context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, ok := c[id]; ok {
		return port.ErrAlreadyExists
	}
	c[id] = raw
	return nil
}

// Get decodes a document into dst or returns domain.ErrNotFound.
func (s *Store) Get(_ context.Context, collection, id string, dst any) error {
	s.mu.RLock()
	raw, ok := s.collection(collection)[id]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}
	return json.Unmarshal(raw, dst)
}

// Set merges fields into the document, creating it when absent.
func (s *Store) Set(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(collection, id, fields, true)
}

// Update merges fields into an existing document or returns
// domain.ErrNotFound.
func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(collection, id, fields, false)
}

// merge must be called with the write lock held.
func (s *Store) merge(collection, id string, fields map[string]any, createMissing bool) error {
	c := s.collection(collection)
	m := make(map[string]any)
	raw, ok := c[id]
	if !ok && !createMissing {
		return domain.ErrNotFound
	}
	if ok {
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
	}
	for k, v := range fields {
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return err
	}
	c[id] = merged
	return nil
}

// Delete removes a document or returns domain.ErrNotFound.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, ok := c[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c, id)
	return nil
}

// BatchCommit validates every write before applying any, so a failing
// write leaves the store untouched.
func (s *Store) BatchCommit(_ context.Context, writes []port.Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		c := s.collection(w.Collection)
		_, exists := c[w.ID]
		switch w.Kind {
		case port.WriteCreate:
			if exists {
				return port.ErrAlreadyExists
			}
		case port.WriteUpdate, port.WriteDelete:
			if !exists {
				return domain.ErrNotFound
			}
		}
	}
	for _, w := range writes {
		c := s.collection(w.Collection)
		switch w.Kind {
		case port.WriteCreate:
			raw, err := json.Marshal(w.Doc)
			if err != nil {
				return err
			}
			c[w.ID] = raw
		case port.WriteSet:
			if err := s.merge(w.Collection, w.ID, w.Fields, true); err != nil {
				return err
			}
		case port.WriteUpdate:
			if err := s.merge(w.Collection, w.ID, w.Fields, false); err != nil {
				return err
			}
		case port.WriteDelete:
			delete(c, w.ID)
		default:
			return fmt.Errorf("unknown write kind %d", w.Kind)
		}
	}
	return nil
}

// Query returns documents matching the filters, ordered and limited. With
// no explicit order, results are sorted by id for determinism.
func (s *Store) Query(_ context.Context, collection string, q port.Query) ([]port.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type row struct {
		id     string
		raw    []byte
		fields map[string]any
	}
	var rows []row
	for id, raw := range s.collection(collection) {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		match := true
		for _, f := range q.Filters {
			if f.Op != port.OpEq || !valueEq(m[f.Field], f.Value) {
				match = false
				break
			}
		}
		if match {
			rows = append(rows, row{id: id, raw: raw, fields: m})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if q.OrderBy != "" {
			c := compareValues(rows[i].fields[q.OrderBy], rows[j].fields[q.OrderBy])
			if c != 0 {
				if q.Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return rows[i].id < rows[j].id
	})

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	docs := make([]port.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, port.Document{ID: r.id, Data: r.raw})
	}
	return docs, nil
}

// valueEq compares a decoded JSON value against a filter value through
// their JSON encodings, which normalises numeric types.
func valueEq(a, b any) bool {
	ra, err := json.Marshal(a)
	if err != nil {
		return false
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ra) == string(rb)
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			// Two RFC 3339 strings compare as instants. Lexicographic
			// order mis-sorts differing fractional-second widths.
			ta, errA := time.Parse(time.RFC3339Nano, av)
			tb, errB := time.Parse(time.RFC3339Nano, bv)
			if errA == nil && errB == nil {
				return ta.Compare(tb)
			}
			return strings.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	if a == nil && b != nil {
		return -1
	}
	if a != nil && b == nil {
		return 1
	}
	return 0
}
