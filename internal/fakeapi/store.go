package fakeapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// record is one stored object, kept as the decoded JSON it was created from
// plus the fields the server assigns.
type record map[string]any

func (r record) str(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func (r record) clone() record {
	out := make(record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// collection keeps records in insertion order.
type collection struct {
	mu      sync.RWMutex
	records []record
	byID    map[string]record
}

func newCollection() *collection {
	return &collection{byID: make(map[string]record)}
}

// insert assigns a fresh id to rec and stores it under idField.
func (c *collection) insert(idField string, rec record) record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec.str(idField) == "" {
		rec[idField] = uuid.NewString()
	}
	c.records = append(c.records, rec)
	c.byID[rec.str(idField)] = rec
	return rec.clone()
}

func (c *collection) get(id string) (record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return r.clone(), true
}

// find returns the first record whose field equals value.
func (c *collection) find(field, value string) (record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.str(field) == value {
			return r.clone(), true
		}
	}
	return nil, false
}

// query returns the records matching every exact filter and, when search is
// not empty, containing it (case-insensitively) in one of searchFields.
func (c *collection) query(filters map[string]string, search string, searchFields []string, orderBy string) []record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	search = strings.ToLower(search)
	out := make([]record, 0, len(c.records))
	for _, r := range c.records {
		if !matchesFilters(r, filters) {
			continue
		}
		if search != "" && !matchesSearch(r, search, searchFields) {
			continue
		}
		out = append(out, r.clone())
	}
	if orderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i][orderBy], out[j][orderBy])
		})
	}
	return out
}

// less orders JSON numbers numerically and everything else by its text.
func less(a, b any) bool {
	x, xok := a.(float64)
	y, yok := b.(float64)
	if xok && yok {
		return x < y
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func (c *collection) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func matchesFilters(r record, filters map[string]string) bool {
	for k, v := range filters {
		if r.str(k) != v {
			return false
		}
	}
	return true
}

func matchesSearch(r record, needle string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(r.str(f)), needle) {
			return true
		}
	}
	return false
}
