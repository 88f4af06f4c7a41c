package naming

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fixed network names.
const (
	BasicGuestNetwork = "guestNetworkForBasicZone"
	SharedSGNetwork   = "Shared SG enabled network"
)

// SuffixLength is the length of the random zone name suffix.
const SuffixLength = 6

// ledgerTimeLayout renders e.g. Mar_05_2026_14_30_00.
const ledgerTimeLayout = "Jan_02_2006_15_04_05"

// RandomSuffix returns a short random lowercase alphanumeric string.
func RandomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:SuffixLength]
}

// RetryZone returns the name used when recreating a zone whose name is taken.
func RetryZone(zone, suffix string) string {
	return fmt.Sprintf("%s_%s", zone, suffix)
}

// LedgerFile returns the ledger file name for a run started at t.
func LedgerFile(t time.Time) string {
	return fmt.Sprintf("dc_entries_%s.yaml", t.Format(ledgerTimeLayout))
}
