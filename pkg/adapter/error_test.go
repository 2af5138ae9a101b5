package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"plain error", errors.New("boom"), false},
		{"temporary flag", &AdapterError{Temporary: true, Err: errors.New("conn reset")}, true},
		{"rate limited", &AdapterError{Status: 429}, true},
		{"server error", &AdapterError{Status: 503}, true},
		{"client error", &AdapterError{Status: 404}, false},
		{"wrapped adapter error", fmt.Errorf("ollama: %w", &AdapterError{Status: 500}), true},
	}

	for _, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Fatalf("%s: IsTransient = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAdapterErrorMessage(t *testing.T) {
	e := &AdapterError{Status: 429, Err: errors.New("rate limited")}
	if msg := e.Error(); !strings.Contains(msg, "429") || !strings.Contains(msg, "rate limited") {
		t.Fatalf("unexpected message: %q", msg)
	}

	e = &AdapterError{Err: errors.New("dial tcp: connection refused")}
	if msg := e.Error(); msg != "dial tcp: connection refused" {
		t.Fatalf("unexpected message: %q", msg)
	}

	e = &AdapterError{Status: 500}
	if msg := e.Error(); !strings.Contains(msg, "500") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAdapterErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &AdapterError{Status: 500, Err: inner}
	if !errors.Is(e, inner) {
		t.Fatal("expected Unwrap to expose the inner error")
	}
}
