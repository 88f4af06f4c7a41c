package testing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/state"
)

// RecordingObserver is an Observer that keeps every message and event.
type RecordingObserver struct {
	mu       sync.Mutex
	messages []string
	events   []provisioning.Event
}

var _ provisioning.Observer = (*RecordingObserver)(nil)

// NewRecordingObserver creates an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Printf implements provisioning.Observer.
func (o *RecordingObserver) Printf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, fmt.Sprintf(format, v...))
}

// Event implements provisioning.Observer.
func (o *RecordingObserver) Event(event provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

// Progress implements provisioning.Observer.
func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields implements provisioning.Observer. The child shares the recording.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}

// Messages returns the Printf lines so far.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// Events returns the events of the given type, or all events when typ is empty.
func (o *RecordingObserver) Events(typ provisioning.EventType) []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []provisioning.Event
	for _, e := range o.events {
		if typ == "" || e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// HasMessage reports whether any Printf line contains substr.
func (o *RecordingObserver) HasMessage(substr string) bool {
	for _, m := range o.Messages() {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// MockStore is a mock implementation of state.Store.
type MockStore struct {
	mock.Mock
}

var _ state.Store = (*MockStore)(nil)

// Save records the call and returns the configured location and error.
func (m *MockStore) Save(ctx context.Context, doc *state.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

// Load records the call and returns the configured document and error.
func (m *MockStore) Load(ctx context.Context, location string) (*state.Document, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*state.Document), args.Error(1)
}
