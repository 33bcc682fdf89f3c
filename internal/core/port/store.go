package port

import (
	"context"
	"errors"
)

// ErrAlreadyExists is returned by DocumentStore.Create when a document
// with the same identity exists. The quota gate relies on this as its
// sole concurrency primitive: a successful create is proof of first-ever
// consumption.
var ErrAlreadyExists = errors.New("document already exists")

// Collection names used by the engine.
const (
	CollectionAds          = "ads"
	CollectionSubmissions  = "submissions"
	CollectionQuotaMarkers = "quota_markers"
	CollectionOwners       = "owners"
)

// WriteKind discriminates the operations inside a batch.
type WriteKind int

const (
	WriteCreate WriteKind = iota
	WriteSet
	WriteUpdate
	WriteDelete
)

// Write is a single operation inside a BatchCommit. Doc is used by
// creates, Fields by sets and updates.
type Write struct {
	Kind       WriteKind
	Collection string
	ID         string
	Doc        any
	Fields     map[string]any
}

// FilterOp is a query comparison operator.
type FilterOp string

const OpEq FilterOp = "=="

// Filter matches a top-level document field against a value.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Query selects documents from a collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Document is a raw query result; Data is the JSON document body.
type Document struct {
	ID   string
	Data []byte
}

// DocumentStore is the outbound port to the backing document database.
// Implementations must guarantee that Create fails with ErrAlreadyExists
// when the identity is taken, that BatchCommit is all-or-nothing, and
// must map connectivity failures to domain.TransientStoreError. Get and
// Update report a missing document as domain.ErrNotFound.
type DocumentStore interface {
	// Create stores a new document, failing if the identity exists.
	Create(ctx context.Context, collection, id string, doc any) error
	// Get decodes the document with the given identity into dst.
	Get(ctx context.Context, collection, id string, dst any) error
	// Set merges fields into the document, creating it when absent.
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document.
	Delete(ctx context.Context, collection, id string) error
	// BatchCommit applies all writes atomically.
	BatchCommit(ctx context.Context, writes []Write) error
	// Query returns documents matching q.
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
}
