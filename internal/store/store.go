// Package store adapts the managed document backend (MongoDB in production,
// an in-process map store in tests) behind collection gateways with live
// query subscription. The backend query dialect never leaks past this
// package: callers express equality filters and single-field ordering,
// which is all the absence data model requires.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/cse-sg/absence-service/internal/domain"
)

// Collection names in the document backend.
const (
	ColStaff    = "staff_list"
	ColAbsences = "absences"
)

// Sentinel errors shared by all gateway implementations.
var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate document")
)

// Document is implemented by records persisted through a gateway.
type Document interface {
	DocumentID() string
	SetDocumentID(id string)
	StampCreated(t time.Time)
}

// doc constrains a pointer type to its record struct plus Document.
type doc[T any] interface {
	*T
	Document
}

// Filter is a single-field equality predicate.
type Filter struct {
	Field string
	Value any
}

// Where builds a one-predicate filter list.
func Where(field string, value any) []Filter {
	return []Filter{{Field: field, Value: value}}
}

// Sort orders results by one field.
type Sort struct {
	Field string
	Desc  bool
}

// StaffStore is the gateway over the staff_list collection.
type StaffStore interface {
	List(ctx context.Context, sort ...Sort) ([]*domain.StaffRecord, error)
	GetWhere(ctx context.Context, filters []Filter, sort ...Sort) ([]*domain.StaffRecord, error)
	GetByID(ctx context.Context, id string) (*domain.StaffRecord, error)
	Insert(ctx context.Context, rec *domain.StaffRecord) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, filters []Filter, sort ...Sort) (<-chan []*domain.StaffRecord, func(), error)
}

// AbsenceStore is the gateway over the absences collection.
type AbsenceStore interface {
	List(ctx context.Context, sort ...Sort) ([]*domain.AbsenceRecord, error)
	GetWhere(ctx context.Context, filters []Filter, sort ...Sort) ([]*domain.AbsenceRecord, error)
	GetByID(ctx context.Context, id string) (*domain.AbsenceRecord, error)
	Insert(ctx context.Context, rec *domain.AbsenceRecord) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, filters []Filter, sort ...Sort) (<-chan []*domain.AbsenceRecord, func(), error)
}
