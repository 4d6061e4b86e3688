package validate_test

import "github.com/dmitrymomot/hope/pkg/validate"

// catch runs fn and returns the validation or configuration error it panicked
// with, or nil.
func catch(fn func()) (err error) {
	defer validate.Recover(&err)
	fn()
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
