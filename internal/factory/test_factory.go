package factory

import (
	"time"

	"github.com/strengthsync/strengthsync/internal/dependencies/mocks"
	"github.com/strengthsync/strengthsync/internal/services/auth"
	"github.com/strengthsync/strengthsync/internal/services/notify"
	"github.com/strengthsync/strengthsync/internal/storage/memory"
	"github.com/strengthsync/strengthsync/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Sent       *notify.MemorySender
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	sender := notify.NewMemorySender()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), sender, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Sent:       sender,
	}
}
