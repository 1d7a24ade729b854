package ir

import "encoding/json"

// JSON serialization support for binding expressions.
// All expressions include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for PrimitiveExpr.
func (e *PrimitiveExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Java   string `json:"java"`
		Target string `json:"target"`
	}{
		Kind:   "primitive",
		Java:   e.Java.String(),
		Target: e.Target.String(),
	})
}

// MarshalJSON implements json.Marshaler for BoxedExpr.
func (e *BoxedExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element *PrimitiveExpr `json:"element"`
	}{
		Kind:    "boxed",
		Element: e.Element,
	})
}

// MarshalJSON implements json.Marshaler for BuiltinExpr.
func (e *BuiltinExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Builtin string `json:"builtin"`
	}{
		Kind:    "builtin",
		Builtin: e.Builtin.String(),
	})
}

// MarshalJSON implements json.Marshaler for ArrayExpr.
func (e *ArrayExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Element Expr   `json:"element"`
	}{
		Kind:    "array",
		Element: e.Element,
	})
}

// MarshalJSON implements json.Marshaler for ReferenceExpr.
func (e *ReferenceExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Class  string `json:"class"`
		Target string `json:"target"`
	}{
		Kind:   "reference",
		Class:  e.Class,
		Target: e.Target.Path(),
	})
}
