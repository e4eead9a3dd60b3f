package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cse-sg/absence-service/internal/domain"
)

// memoryCollection is an in-process gateway backend with the same observable
// semantics as the Mongo implementation, including schemaless merge-writes
// and absent-field handling. It backs tests and local runs without a mongod.
// Documents are held in marshaled form so reads always return fresh copies.
type memoryCollection[T any, PT doc[T]] struct {
	name     string
	notifier *Notifier
	clock    func() time.Time

	mu   sync.RWMutex
	docs map[string]bson.Raw
}

// NewMemoryStaffStore creates an empty in-process staff_list gateway.
func NewMemoryStaffStore(notifier *Notifier) StaffStore {
	return newMemoryCollection[domain.StaffRecord, *domain.StaffRecord](ColStaff, notifier)
}

// NewMemoryAbsenceStore creates an empty in-process absences gateway.
func NewMemoryAbsenceStore(notifier *Notifier) AbsenceStore {
	return newMemoryCollection[domain.AbsenceRecord, *domain.AbsenceRecord](ColAbsences, notifier)
}

func newMemoryCollection[T any, PT doc[T]](name string, notifier *Notifier) *memoryCollection[T, PT] {
	return &memoryCollection[T, PT]{
		name:     name,
		notifier: notifier,
		clock:    time.Now,
		docs:     make(map[string]bson.Raw),
	}
}

func (c *memoryCollection[T, PT]) List(ctx context.Context, sorts ...Sort) ([]PT, error) {
	return c.GetWhere(ctx, nil, sorts...)
}

func (c *memoryCollection[T, PT]) GetWhere(_ context.Context, filters []Filter, sorts ...Sort) ([]PT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results := []PT{}
	for _, raw := range c.docs {
		if !matches(raw, filters) {
			continue
		}
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		results = append(results, PT(&v))
	}
	sortDocs(results, sorts)
	return results, nil
}

func (c *memoryCollection[T, PT]) GetByID(_ context.Context, id string) (PT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return PT(&v), nil
}

func (c *memoryCollection[T, PT]) Insert(_ context.Context, rec PT) error {
	if rec.DocumentID() == "" {
		rec.SetDocumentID(uuid.NewString())
	}
	rec.StampCreated(c.clock().UTC())

	raw, err := bson.Marshal(rec)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if _, exists := c.docs[rec.DocumentID()]; exists {
		c.mu.Unlock()
		return ErrDuplicate
	}
	c.docs[rec.DocumentID()] = raw
	c.mu.Unlock()

	c.notifier.Notify(c.name)
	return nil
}

func (c *memoryCollection[T, PT]) Update(_ context.Context, id string, fields map[string]any) error {
	c.mu.Lock()
	raw, ok := c.docs[id]
	if !ok {
		c.mu.Unlock()
		return ErrNotFound
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		c.mu.Unlock()
		return err
	}
	for k, v := range fields {
		m[k] = v
	}
	merged, err := bson.Marshal(m)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.docs[id] = merged
	c.mu.Unlock()

	c.notifier.Notify(c.name)
	return nil
}

func (c *memoryCollection[T, PT]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	if _, ok := c.docs[id]; !ok {
		c.mu.Unlock()
		return ErrNotFound
	}
	delete(c.docs, id)
	c.mu.Unlock()

	c.notifier.Notify(c.name)
	return nil
}

func (c *memoryCollection[T, PT]) Subscribe(ctx context.Context, filters []Filter, sorts ...Sort) (<-chan []PT, func(), error) {
	pings, stop := c.notifier.Listen(c.name)
	out, release := subscribeLoop(ctx, pings, stop, func(qctx context.Context) ([]PT, error) {
		return c.GetWhere(qctx, filters, sorts...)
	})
	return out, release, nil
}

// matches applies equality filters against the marshaled document. Values
// are compared by their string form, which is exact for the string-typed
// fields the services filter on.
func matches(raw bson.Raw, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return false
	}
	for _, f := range filters {
		val, ok := m[f.Field]
		if !ok {
			return false
		}
		if fmt.Sprint(val) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

func sortDocs[PT Document](docs []PT, sorts []Sort) {
	if len(sorts) == 0 {
		// Deterministic order for the unsorted case.
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].DocumentID() < docs[j].DocumentID()
		})
		return
	}
	s := sorts[0]
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := fieldString(docs[i], s.Field), fieldString(docs[j], s.Field)
		if s.Desc {
			return a > b
		}
		return a < b
	})
}

func fieldString(d Document, field string) string {
	raw, err := bson.Marshal(d)
	if err != nil {
		return ""
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return ""
	}
	return fmt.Sprint(m[field])
}
