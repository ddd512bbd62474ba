package domain

import "context"

// Collection names one logical table of the store.
type Collection string

// Collections persisted by recruitledger.
const (
	CollectionPeople                   Collection = "people"
	CollectionPlayers                  Collection = "players"
	CollectionCoaches                  Collection = "coaches"
	CollectionStaff                    Collection = "staff"
	CollectionSchools                  Collection = "schools"
	CollectionTasks                    Collection = "tasks"
	CollectionPlayerRatings            Collection = "player_ratings"
	CollectionExternalNILDeals         Collection = "external_nil_deals"
	CollectionInstitutionalAllocations Collection = "institutional_allocations"
	CollectionFundingPools             Collection = "funding_pools"
)

// Document is the unit a store persists: an opaque JSON payload keyed by ID,
// plus the secondary index values extracted from it. An empty index value is
// treated as null and never indexed.
type Document struct {
	ID      string            `json:"id"`
	Indexes map[string]string `json:"indexes,omitempty"`
	Payload []byte            `json:"payload"`
}

// Reader exposes point, scan and secondary index lookups.
type Reader interface {
	Get(ctx context.Context, c Collection, id string) (Document, bool, error)
	// GetAll returns every document of a collection in no particular order.
	GetAll(ctx context.Context, c Collection) ([]Document, error)
	GetByIndex(ctx context.Context, c Collection, field, value string) ([]Document, error)
}

// Transaction is the mutable scope handed to RunInTransaction callbacks.
// Writes become visible to other callers only when the callback returns nil.
type Transaction interface {
	Reader
	// Put inserts or replaces the document with the same ID.
	Put(ctx context.Context, c Collection, doc Document) error
	// Delete removes a document; deleting a missing ID is not an error.
	Delete(ctx context.Context, c Collection, id string) error
}

// PersistentStore is the durable backend contract. Every method other than
// Init and Close fails with ErrStorageUnavailable until Init succeeds.
// Put and Delete called directly on the store behave as single-operation
// transactions.
type PersistentStore interface {
	Transaction
	// Init creates collections and indexes when absent. It is idempotent.
	Init(ctx context.Context) error
	RunInTransaction(ctx context.Context, fn func(Transaction) error) error
	Close() error
}
