// Package memory provides an in-memory implementation of the document store
// used for tests and ephemeral environments.
package memory

import (
	"context"
	"fmt"
	"recruitledger/pkg/domain"
	"sync"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type collectionState map[string]domain.Document

type memoryState map[domain.Collection]collectionState

func newMemoryState() memoryState {
	state := make(memoryState)
	for _, spec := range domain.Schema() {
		state[spec.Name] = make(collectionState)
	}
	return state
}

func (s memoryState) clone() memoryState {
	cp := make(memoryState, len(s))
	for name, docs := range s {
		out := make(collectionState, len(docs))
		for id, doc := range docs {
			out[id] = cloneDocument(doc)
		}
		cp[name] = out
	}
	return cp
}

func (s memoryState) collection(c domain.Collection) (collectionState, error) {
	docs, ok := s[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	return docs, nil
}

func cloneDocument(doc domain.Document) domain.Document {
	cp := domain.Document{ID: doc.ID, Payload: append([]byte(nil), doc.Payload...)}
	if doc.Indexes != nil {
		cp.Indexes = make(map[string]string, len(doc.Indexes))
		for k, v := range doc.Indexes {
			cp.Indexes[k] = v
		}
	}
	return cp
}

// Store provides an in-memory transactional document store. Transactions run
// against a clone of the state that replaces the live state only on success.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	ready  bool
	closed bool
}

// NewStore constructs an uninitialised in-memory store. Init must be called
// before use.
func NewStore() *Store {
	return &Store{}
}

// Init creates every collection declared in the schema. Existing data is kept.
func (s *Store) Init(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStorageUnavailable
	}
	if s.state == nil {
		s.state = newMemoryState()
	}
	for _, spec := range domain.Schema() {
		if _, ok := s.state[spec.Name]; !ok {
			s.state[spec.Name] = make(collectionState)
		}
	}
	s.ready = true
	return nil
}

// Close releases the state. Subsequent calls fail with ErrStorageUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.ready = false
	s.state = nil
	return nil
}

// RunInTransaction executes fn against a cloned state and commits it when fn returns nil.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return domain.ErrStorageUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &transaction{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// Get returns a copy of the document stored under id.
func (s *Store) Get(ctx context.Context, c domain.Collection, id string) (domain.Document, bool, error) {
	var (
		doc domain.Document
		ok  bool
	)
	err := s.view(func(state memoryState) error {
		var err error
		doc, ok, err = get(state, c, id)
		return err
	})
	return doc, ok, err
}

// GetAll returns copies of every document in the collection.
func (s *Store) GetAll(ctx context.Context, c domain.Collection) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.view(func(state memoryState) error {
		var err error
		docs, err = getAll(state, c)
		return err
	})
	return docs, err
}

// GetByIndex returns copies of the documents whose index field equals value.
func (s *Store) GetByIndex(ctx context.Context, c domain.Collection, field, value string) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.view(func(state memoryState) error {
		var err error
		docs, err = getByIndex(state, c, field, value)
		return err
	})
	return docs, err
}

// Put stores doc in a single-operation transaction.
func (s *Store) Put(ctx context.Context, c domain.Collection, doc domain.Document) error {
	return s.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.Put(ctx, c, doc)
	})
}

// Delete removes a document in a single-operation transaction.
func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) error {
	return s.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.Delete(ctx, c, id)
	})
}

func (s *Store) view(fn func(memoryState) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return domain.ErrStorageUnavailable
	}
	return fn(s.state)
}

type transaction struct {
	state memoryState
}

func (tx *transaction) Get(_ context.Context, c domain.Collection, id string) (domain.Document, bool, error) {
	return get(tx.state, c, id)
}

func (tx *transaction) GetAll(_ context.Context, c domain.Collection) ([]domain.Document, error) {
	return getAll(tx.state, c)
}

func (tx *transaction) GetByIndex(_ context.Context, c domain.Collection, field, value string) ([]domain.Document, error) {
	return getByIndex(tx.state, c, field, value)
}

func (tx *transaction) Put(_ context.Context, c domain.Collection, doc domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("put %s: document id required", c)
	}
	docs, err := tx.state.collection(c)
	if err != nil {
		return err
	}
	spec, _ := domain.LookupCollection(c)
	for _, field := range spec.UniqueIndexes() {
		value := doc.Indexes[field]
		if value == "" {
			continue
		}
		for id, existing := range docs {
			if id != doc.ID && existing.Indexes[field] == value {
				return &domain.ConflictError{Entity: c, Field: field, Value: value, ExistingID: id}
			}
		}
	}
	docs[doc.ID] = cloneDocument(doc)
	return nil
}

func (tx *transaction) Delete(_ context.Context, c domain.Collection, id string) error {
	docs, err := tx.state.collection(c)
	if err != nil {
		return err
	}
	delete(docs, id)
	return nil
}

func get(state memoryState, c domain.Collection, id string) (domain.Document, bool, error) {
	docs, err := state.collection(c)
	if err != nil {
		return domain.Document{}, false, err
	}
	doc, ok := docs[id]
	if !ok {
		return domain.Document{}, false, nil
	}
	return cloneDocument(doc), true, nil
}

func getAll(state memoryState, c domain.Collection) ([]domain.Document, error) {
	docs, err := state.collection(c)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, cloneDocument(doc))
	}
	return out, nil
}

func getByIndex(state memoryState, c domain.Collection, field, value string) ([]domain.Document, error) {
	docs, err := state.collection(c)
	if err != nil {
		return nil, err
	}
	spec, _ := domain.LookupCollection(c)
	if !spec.HasIndex(field) {
		return nil, fmt.Errorf("%s has no index on %q", c, field)
	}
	var out []domain.Document
	if value == "" {
		return out, nil
	}
	for _, doc := range docs {
		if doc.Indexes[field] == value {
			out = append(out, cloneDocument(doc))
		}
	}
	return out, nil
}
