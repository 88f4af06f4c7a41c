package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dcdeploy/internal/provisioning"
)

func sampleLedger() *provisioning.Ledger {
	l := provisioning.NewLedger()
	l.Register(provisioning.ResourceZone, "z-1")
	l.Register(provisioning.ResourcePhysicalNetwork, "pn-1")
	l.Register(provisioning.ResourceHost, "h-1")
	l.Register(provisioning.ResourceHost, "h-2")
	l.Register(provisioning.ResourceStoragePool, "sp-1")
	return l
}

func TestNewDocument_RoundTripsSnapshot(t *testing.T) {
	t.Parallel()

	snap := sampleLedger().Snapshot()
	now := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)

	doc := NewDocument("run-1", snap, now)
	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, []string{"Zone", "PhysicalNetwork", "Host", "StoragePool"}, doc.Order)
	assert.Equal(t, []string{"h-1", "h-2"}, doc.Resources["Host"])

	assert.Equal(t, snap, doc.Snapshot())
}

func TestDocument_MarshalUnmarshal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)
	doc := NewDocument("run-1", sampleLedger().Snapshot(), now)

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "order:")

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Order, got.Order)
	assert.Equal(t, doc.Resources, got.Resources)
	assert.True(t, now.Equal(got.CreatedAt))
}

func TestUnmarshal_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "missing version",
			data:    "order: [Zone]\nresources:\n  Zone: [z-1]\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "future version",
			data:    "version: 99\norder: [Zone]\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "duplicate order entry",
			data:    "version: 1\norder: [Zone, Zone]\nresources:\n  Zone: [z-1]\n",
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "resources outside order",
			data:    "version: 1\norder: [Zone]\nresources:\n  Zone: [z-1]\n  Host: [h-1]\n",
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unmarshal([]byte(tt.data))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnmarshal_InvalidYAML(t *testing.T) {
	t.Parallel()
	_, err := Unmarshal([]byte("version: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode ledger")
}

func TestUnmarshal_EmptyLedger(t *testing.T) {
	t.Parallel()
	doc, err := Unmarshal([]byte("version: 1\norder: []\nresources: {}\n"))
	require.NoError(t, err)
	assert.True(t, doc.Snapshot().IsEmpty())
}
