package core

import (
	"recruitledger/pkg/domain"
	"strings"
)

// applyRequired applies a patch field to a required target. Clearing is rejected.
func applyRequired[T any](entity domain.Collection, field string, f domain.Field[T], dst *T) error {
	if f.IsNull() {
		return domain.RequiredCleared(entity, field)
	}
	f.ApplyTo(dst)
	return nil
}

// applySet applies a patch to a set-valued field; Null empties the set.
func applySet[T comparable](f domain.Field[[]T], dst *[]T) {
	if !f.Present() {
		return
	}
	v, _ := f.Value()
	*dst = domain.Dedupe(v)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
