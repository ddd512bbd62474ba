// Package backup archives the whole store as a JSON snapshot in a blob
// store and restores it.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"recruitledger/internal/blob"
	"recruitledger/pkg/domain"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// FormatVersion is written into every snapshot; Restore refuses others.
const FormatVersion = 1

const contentType = "application/json"

// Snapshot is the archived form of every collection.
type Snapshot struct {
	Version     int                            `json:"version"`
	TakenAt     time.Time                      `json:"taken_at"`
	Collections map[domain.Collection][]Record `json:"collections"`
}

// Record is one archived document. The payload is kept as raw JSON so
// snapshots stay readable.
type Record struct {
	ID      string            `json:"id"`
	Indexes map[string]string `json:"indexes,omitempty"`
	Payload json.RawMessage   `json:"payload"`
}

// Count returns the number of records across all collections.
func (s Snapshot) Count() int {
	n := 0
	for _, records := range s.Collections {
		n += len(records)
	}
	return n
}

// Archiver moves snapshots between a persistent store and a blob store.
type Archiver struct {
	store  domain.PersistentStore
	blobs  blob.Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Archiver) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) {
		if now != nil {
			a.now = now
		}
	}
}

// New returns an Archiver over an initialised store.
func New(store domain.PersistentStore, blobs blob.Store, opts ...Option) *Archiver {
	a := &Archiver{store: store, blobs: blobs, logger: zap.NewNop(), now: domain.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Capture reads every collection inside one transaction so the snapshot is
// consistent. Records are ordered by id.
func (a *Archiver) Capture(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Version:     FormatVersion,
		TakenAt:     a.now(),
		Collections: make(map[domain.Collection][]Record),
	}
	err := a.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		for _, spec := range domain.Schema() {
			docs, err := tx.GetAll(ctx, spec.Name)
			if err != nil {
				return fmt.Errorf("capture %s: %w", spec.Name, err)
			}
			records := make([]Record, 0, len(docs))
			for _, doc := range docs {
				records = append(records, Record{ID: doc.ID, Indexes: doc.Indexes, Payload: doc.Payload})
			}
			sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
			snap.Collections[spec.Name] = records
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Backup captures the store and writes it under key. Existing keys are
// never overwritten.
func (a *Archiver) Backup(ctx context.Context, key string) (blob.Info, error) {
	snap, err := a.Capture(ctx)
	if err != nil {
		return blob.Info{}, err
	}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode snapshot: %w", err)
	}
	info, err := a.blobs.Put(ctx, key, bytes.NewReader(body), blob.PutOptions{
		ContentType: contentType,
		Metadata: map[string]string{
			"records": strconv.Itoa(snap.Count()),
			"version": strconv.Itoa(FormatVersion),
		},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store snapshot %s: %w", key, err)
	}
	a.logger.Info("snapshot written",
		zap.String("key", info.Key),
		zap.String("driver", string(a.blobs.Driver())),
		zap.Int("records", snap.Count()),
		zap.Int64("bytes", info.Size))
	return info, nil
}

// Load reads and decodes the snapshot stored under key.
func (a *Archiver) Load(ctx context.Context, key string) (Snapshot, error) {
	_, rc, err := a.blobs.Get(ctx, key)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = rc.Close() }()
	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	if snap.Version != FormatVersion {
		return Snapshot{}, fmt.Errorf("snapshot %s has version %d, want %d", key, snap.Version, FormatVersion)
	}
	for c := range snap.Collections {
		if _, ok := domain.LookupCollection(c); !ok {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w: %s", key, domain.ErrUnknownCollection, c)
		}
	}
	return snap, nil
}

// Restore replaces the store contents with the snapshot under key in one
// transaction. Collections absent from the snapshot end up empty.
func (a *Archiver) Restore(ctx context.Context, key string) (Snapshot, error) {
	snap, err := a.Load(ctx, key)
	if err != nil {
		return Snapshot{}, err
	}
	err = a.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		for _, spec := range domain.Schema() {
			existing, err := tx.GetAll(ctx, spec.Name)
			if err != nil {
				return err
			}
			for _, doc := range existing {
				if err := tx.Delete(ctx, spec.Name, doc.ID); err != nil {
					return err
				}
			}
		}
		for _, spec := range domain.Schema() {
			for _, rec := range snap.Collections[spec.Name] {
				doc := domain.Document{ID: rec.ID, Indexes: rec.Indexes, Payload: []byte(rec.Payload)}
				if err := tx.Put(ctx, spec.Name, doc); err != nil {
					return fmt.Errorf("restore %s %s: %w", spec.Name, rec.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	a.logger.Info("snapshot restored", zap.String("key", key), zap.Int("records", snap.Count()))
	return snap, nil
}

// List returns archived snapshots whose key has prefix.
func (a *Archiver) List(ctx context.Context, prefix string) ([]blob.Info, error) {
	return a.blobs.List(ctx, prefix)
}
