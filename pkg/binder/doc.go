// Package binder fills request structs from path parameters, query strings
// and JSON bodies. Each constructor returns a func(*http.Request, any) error
// that handler.Wrap applies in order.
//
// Struct tags select the source:
//
//	type publishPresetRequest struct {
//		Name string `path:"name"`
//		ID   string `query:"id"`
//	}
//
// Supported field types are strings, integers, floats, bools, pointers to
// those for optional values, and slices for repeated query parameters.
package binder
