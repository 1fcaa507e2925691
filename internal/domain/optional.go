package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a partial-update payload. It distinguishes three states:
// absent (the client did not send the field), null (the client sent JSON null)
// and a concrete value.
//
// Absence is the zero value, so a struct field of type Optional[T] that never
// sees UnmarshalJSON stays absent.
type Optional[T any] struct {
	set   bool
	valid bool
	value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, valid: true, value: v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field was supplied at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was supplied as null.
func (o Optional[T]) IsNull() bool { return o.set && !o.valid }

// Value returns the held value and whether it is present and non-null.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.set && o.valid
}

// Ptr returns a pointer to a copy of the value, or nil when null or absent.
func (o Optional[T]) Ptr() *T {
	if !o.set || !o.valid {
		return nil
	}
	v := o.value
	return &v
}

// ApplyNullable updates *dst when the field was supplied: a value replaces it
// and null clears it.
func (o Optional[T]) ApplyNullable(dst **T) {
	if o.set {
		*dst = o.Ptr()
	}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys present
// in the payload, which is what marks the field as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.valid = false
		var zero T
		o.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

// MarshalJSON implements json.Marshaler. Absent and null both encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
