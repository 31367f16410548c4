package imagegen

import (
	"context"
	"sync"
)

// mockPNG is a 1x1 transparent PNG.
var mockPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// MockProvider returns a fixed placeholder image, or queued errors.
type MockProvider struct {
	mu    sync.Mutex
	errs  []error
	Calls []Request
}

// NewMockProvider creates an always-succeeding mock.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// FailNext queues an error for an upcoming Generate call. Queued
// errors are consumed in FIFO order before any success.
func (m *MockProvider) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}
	return &Image{Data: mockPNG, MIMEType: "image/png"}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
