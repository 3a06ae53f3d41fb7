package core

import "github.com/volatiletech/null/v8"

// Optional* types tell apart a JSON field that was omitted from one that was
// explicitly set (possibly to null). Set is false when the field was absent.

type OptionalString struct {
	Value null.String
	Set   bool
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(data)
}

type OptionalInt64 struct {
	Value null.Int64
	Set   bool
}

func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(data)
}

type OptionalFloat64 struct {
	Value null.Float64
	Set   bool
}

func (o *OptionalFloat64) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(data)
}

// CleanNullString trims s and turns blank strings into null.
func CleanNullString(s null.String) null.String {
	str := CleanString(s.String)
	return null.NewString(str, s.Valid && str != "")
}
