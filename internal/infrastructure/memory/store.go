// Package memory implementa los puertos de persistencia en memoria (modo demo y tests).
// Las transacciones se serializan con un mutex y se revierten restaurando una copia del estado.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	d  *data
}

type data struct {
	users      map[int64]*entity.User
	suppliers  map[int64]*entity.Supplier
	products   map[int64]*entity.Product
	categories map[int64]*entity.Category
	states     map[int64]*entity.State
	audit      []*entity.AuditEntry

	seq map[string]int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: &data{
		users:      map[int64]*entity.User{},
		suppliers:  map[int64]*entity.Supplier{},
		products:   map[int64]*entity.Product{},
		categories: map[int64]*entity.Category{},
		states:     map[int64]*entity.State{},
		seq:        map[string]int64{},
	}}
}

// SeedCategories carga categorías de referencia con IDs secuenciales.
func (s *Store) SeedCategories(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		id := s.d.next("categories")
		s.d.categories[id] = &entity.Category{ID: id, Name: n}
	}
}

// SeedStates carga estados de referencia.
func (s *Store) SeedStates(states ...entity.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range states {
		st := st
		st.ID = s.d.next("states")
		s.d.states[st.ID] = &st
	}
}

// with ejecuta fn sobre el estado; si held es false toma el lock.
func (s *Store) with(held bool, fn func(d *data) error) error {
	if !held {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.d)
}

func (d *data) next(name string) int64 {
	d.seq[name]++
	return d.seq[name]
}

func (d *data) clone() *data {
	c := &data{
		users:      make(map[int64]*entity.User, len(d.users)),
		suppliers:  make(map[int64]*entity.Supplier, len(d.suppliers)),
		products:   make(map[int64]*entity.Product, len(d.products)),
		categories: make(map[int64]*entity.Category, len(d.categories)),
		states:     make(map[int64]*entity.State, len(d.states)),
		audit:      make([]*entity.AuditEntry, len(d.audit)),
		seq:        make(map[string]int64, len(d.seq)),
	}
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range d.suppliers {
		s := *v
		c.suppliers[k] = &s
	}
	for k, v := range d.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range d.categories {
		cat := *v
		c.categories[k] = &cat
	}
	for k, v := range d.states {
		st := *v
		c.states[k] = &st
	}
	for i, v := range d.audit {
		e := *v
		c.audit[i] = &e
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
