package converting

// Unwrap returns the zero value of T for nil.
func Unwrap[T any](x *T) (r T) {
	if x != nil {
		r = *x
	}

	return
}

func PointerToValue[T any](v T) *T {
	return &v
}

// HeadersToMap turns http headers into a JSON friendly map.
func HeadersToMap(headers map[string][]string) map[string]any {
	converted := make(map[string]any, len(headers))

	for key, values := range headers {
		converted[key] = values
	}

	return converted
}
