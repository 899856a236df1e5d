package provider

import "fmt"

// NotConfiguredError means the resolved provider has no API key. Raised before
// any network call.
type NotConfiguredError struct {
	Provider string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s API key not configured", e.Provider)
}

// HTTPError is a non-2xx response, carrying the status code and raw body.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.Status, e.Body)
}

// EmptyResponseError means a 2xx response carried no extractable text.
// Deliberately distinct from HTTPError.
type EmptyResponseError struct {
	Provider string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("empty response from %s", e.Provider)
}
