package state

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/dcdeploy/internal/provisioning"
)

// CurrentVersion is the document format written by this build.
const CurrentVersion = 1

// Document is the persisted form of a ledger.
type Document struct {
	Version   int                 `yaml:"version"`
	RunID     string              `yaml:"runId,omitempty"`
	CreatedAt time.Time           `yaml:"createdAt"`
	Order     []string            `yaml:"order"`
	Resources map[string][]string `yaml:"resources"`
}

// NewDocument captures a ledger snapshot.
func NewDocument(runID string, snap provisioning.LedgerSnapshot, now time.Time) *Document {
	doc := &Document{
		Version:   CurrentVersion,
		RunID:     runID,
		CreatedAt: now.UTC(),
		Order:     make([]string, 0, len(snap.Order)),
		Resources: make(map[string][]string, len(snap.Resources)),
	}
	for _, typ := range snap.Order {
		doc.Order = append(doc.Order, string(typ))
		doc.Resources[string(typ)] = append([]string(nil), snap.Resources[typ]...)
	}
	return doc
}

// Snapshot converts the document back into a ledger snapshot.
func (d *Document) Snapshot() provisioning.LedgerSnapshot {
	snap := provisioning.LedgerSnapshot{
		Order:     make([]provisioning.ResourceType, 0, len(d.Order)),
		Resources: make(map[provisioning.ResourceType][]string, len(d.Resources)),
	}
	for _, typ := range d.Order {
		rt := provisioning.ResourceType(typ)
		snap.Order = append(snap.Order, rt)
		snap.Resources[rt] = append([]string(nil), d.Resources[typ]...)
	}
	return snap
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and checks a YAML document.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if d.Version == 0 || d.Version > CurrentVersion {
		return fmt.Errorf("%w: version %d", ErrUnsupportedVersion, d.Version)
	}
	seen := make(map[string]bool, len(d.Order))
	for _, typ := range d.Order {
		if seen[typ] {
			return fmt.Errorf("%w: type %s listed twice in order", ErrInvalidDocument, typ)
		}
		seen[typ] = true
	}
	for typ := range d.Resources {
		if !seen[typ] {
			return fmt.Errorf("%w: type %s has resources but is missing from order", ErrInvalidDocument, typ)
		}
	}
	return nil
}
