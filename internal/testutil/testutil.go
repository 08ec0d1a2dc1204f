package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"stockquote/internal/fetcher"
)

// Call records one invocation of MockGetter.Get.
type Call struct {
	Path   string
	Params map[string]string
}

// MockGetter is a mock implementation of the fetcher.Getter interface for testing
type MockGetter struct {
	GetFunc func(ctx context.Context, path string, params map[string]string, out any) error

	mu    sync.Mutex
	calls []Call
}

// Get implements the fetcher.Getter interface
func (m *MockGetter) Get(ctx context.Context, path string, params map[string]string, out any) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Path: path, Params: params})
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, params, out)
	}
	return nil
}

// Calls returns the recorded invocations in order.
func (m *MockGetter) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// NewSequenceGetter returns a mock that answers successive calls with the
// given errors, decoding body into out on a nil entry. Calls beyond the
// sequence repeat its last entry.
func NewSequenceGetter(body string, errs ...error) *MockGetter {
	var (
		mu sync.Mutex
		n  int
	)
	return &MockGetter{
		GetFunc: func(ctx context.Context, path string, params map[string]string, out any) error {
			mu.Lock()
			i := n
			n++
			mu.Unlock()

			var err error
			if len(errs) > 0 {
				if i >= len(errs) {
					i = len(errs) - 1
				}
				err = errs[i]
			}
			if err != nil {
				return err
			}
			return Decode(body, out)
		},
	}
}

// Decode unmarshals a JSON body into out, the way the HTTP client would.
func Decode(body string, out any) error {
	if out == nil || body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

var _ fetcher.Getter = (*MockGetter)(nil)
