package domain

// Field is a tri-state patch value. The zero value means "not mentioned" and
// leaves the target untouched; Set assigns a value; Null clears an optional
// target.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Set returns a Field that assigns v.
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null returns a Field that clears the target.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the field was mentioned at all.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the field asks for the target to be cleared.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// Value returns the assigned value and whether one was supplied.
func (f Field[T]) Value() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// ApplyTo writes the value into a required target. A Null field is reported
// as not applied so callers can reject clearing required fields.
func (f Field[T]) ApplyTo(dst *T) bool {
	v, ok := f.Value()
	if !ok {
		return false
	}
	*dst = v
	return true
}

// ApplyToPtr writes the value into an optional target, or clears it when the
// field is Null.
func (f Field[T]) ApplyToPtr(dst **T) {
	if !f.present {
		return
	}
	if f.null {
		*dst = nil
		return
	}
	v := f.value
	*dst = &v
}
