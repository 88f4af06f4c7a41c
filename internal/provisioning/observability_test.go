package provisioning

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	mu       sync.Mutex
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) Printf(format string, v ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	child := NewMockObserver()
	for k, v := range m.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

func (m *MockObserver) eventTypes() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// capturingObserver returns a LogrObserver whose lines are collected in memory.
func capturingObserver() (*LogrObserver, *[]string) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})
	return NewLogrObserver(logger), &lines
}

func TestLogrObserver_Printf(t *testing.T) {
	t.Parallel()
	obs, lines := capturingObserver()

	obs.Printf("zone %s created", "z1")

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], `"msg"="zone z1 created"`)
}

func TestLogrObserver_Event(t *testing.T) {
	t.Parallel()
	obs, lines := capturingObserver()

	obs.Event(Event{
		Type:     EventResourceCreated,
		Phase:    "zones",
		Resource: "pod-a",
		Message:  "Pod created",
		Fields:   map[string]string{"type": "Pod", "id": "p-1"},
	})

	require.Len(t, *lines, 1)
	line := (*lines)[0]
	assert.Contains(t, line, `"event"="resource.created"`)
	assert.Contains(t, line, `"phase"="zones"`)
	assert.Contains(t, line, `"resource"="pod-a"`)
	assert.True(t, strings.Index(line, `"id"="p-1"`) < strings.Index(line, `"type"="Pod"`), "fields are sorted")
}

func TestLogrObserver_WithFields(t *testing.T) {
	t.Parallel()
	obs, lines := capturingObserver()

	child := obs.WithFields(map[string]string{"zone": "z1"})
	child.Printf("hello")
	obs.Printf("root")

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], `"zone"="z1"`)
	assert.NotContains(t, (*lines)[1], `"zone"`)
}

func TestLogrObserver_Progress(t *testing.T) {
	t.Parallel()
	obs, lines := capturingObserver()

	obs.Progress("hosts", 1, 4)
	obs.Progress("hosts", 0, 0)

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], `"percent"=25`)
	assert.NotContains(t, (*lines)[1], "percent")
}

func TestNewConsoleObserver(t *testing.T) {
	t.Parallel()
	obs := NewConsoleObserver()
	require.NotNil(t, obs)
	assert.NotPanics(t, func() {
		obs.Printf("test %d", 1)
		obs.Event(Event{Type: EventPhaseStarted, Phase: "zones", Message: "starting"})
	})
}

func TestLogHelpers(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()

	LogPhaseStart(obs, "zones")
	LogResourceCreating(obs, "zones", ResourceZone, "z1")
	LogResourceCreated(obs, "zones", ResourceZone, "z1", "id-1")
	LogResourceFailed(obs, "zones", ResourcePod, "p1", errors.New("boom"))
	LogResourceDeleting(obs, "teardown", ResourceZone, "id-1")
	LogResourceDeleted(obs, "teardown", ResourceZone, "id-1")
	LogWaitGaveUp(obs, "zones", "Up", "c1", 2)
	LogPhaseComplete(obs, "zones", 1500*time.Millisecond)
	LogPhaseFailed(obs, "s3", errors.New("denied"))

	assert.Equal(t, []EventType{
		EventPhaseStarted,
		EventResourceCreating,
		EventResourceCreated,
		EventResourceFailed,
		EventResourceDeleting,
		EventResourceDeleted,
		EventWaitGaveUp,
		EventPhaseCompleted,
		EventPhaseFailed,
	}, obs.eventTypes())

	assert.Equal(t, "id-1", obs.events[2].Fields["id"])
	assert.Contains(t, obs.events[3].Message, "boom")
	assert.Equal(t, "completed in 1.5s", obs.events[7].Message)
}
