package sanitizer

// Transform rewrites a value into its clean form.
type Transform[T any] func(T) T

// Apply runs transforms over value in order.
func Apply[T any](value T, transforms ...Transform[T]) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose bundles transforms into one reusable pipeline.
func Compose[T any](transforms ...Transform[T]) Transform[T] {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}
