package core

import (
	"context"
	"encoding/json"
	"fmt"
	"recruitledger/pkg/domain"
)

func encode(r domain.Record) (domain.Document, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("encode %s: %w", r.RecordID(), err)
	}
	return domain.Document{ID: r.RecordID(), Indexes: r.IndexValues(), Payload: payload}, nil
}

func decode[T any](c domain.Collection, doc domain.Document) (T, error) {
	var out T
	if err := json.Unmarshal(doc.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s %s: %w", c, doc.ID, err)
	}
	return out, nil
}

func put(ctx context.Context, tx domain.Transaction, c domain.Collection, r domain.Record) error {
	doc, err := encode(r)
	if err != nil {
		return err
	}
	return tx.Put(ctx, c, doc)
}

func load[T any](ctx context.Context, r domain.Reader, c domain.Collection, id string) (T, bool, error) {
	var zero T
	if id == "" {
		return zero, false, nil
	}
	doc, ok, err := r.Get(ctx, c, id)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := decode[T](c, doc)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func loadAll[T any](ctx context.Context, r domain.Reader, c domain.Collection) ([]T, error) {
	docs, err := r.GetAll(ctx, c)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](c, docs)
}

func loadByIndex[T any](ctx context.Context, r domain.Reader, c domain.Collection, field, value string) ([]T, error) {
	docs, err := r.GetByIndex(ctx, c, field, value)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](c, docs)
}

func decodeAll[T any](c domain.Collection, docs []domain.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode[T](c, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
