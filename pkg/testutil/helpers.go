// Package testutil provides common utility functions for testing.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"testing"
)

// AlmostEqual reports whether two floats differ by no more than tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// JSONBody encodes v for use as a request body, failing the test on error.
func JSONBody(t testing.TB, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return bytes.NewReader(data)
}

// DecodeJSON decodes data into a value of type T, failing the test on error.
func DecodeJSON[T any](t testing.TB, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to decode %q: %v", data, err)
	}
	return v
}
