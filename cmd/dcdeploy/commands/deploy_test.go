package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploy(t *testing.T) {
	cmd := Deploy()

	require.NotNil(t, cmd)
	assert.Equal(t, "deploy", cmd.Use)
	assert.Equal(t, "Provision every zone of a topology file", cmd.Short)
	assert.Contains(t, cmd.Long, "recorded in a ledger")
	assert.NotNil(t, cmd.RunE)
}

func TestDeploy_Flags(t *testing.T) {
	cmd := Deploy()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "input", shorthand: "i", defValue: ""},
		{name: "state-dir", defValue: "."},
		{name: "state-uri", defValue: ""},
		{name: "no-cleanup", defValue: "false"},
		{name: "metrics-file", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestDeploy_InputFlagRequired(t *testing.T) {
	cmd := Deploy()

	flag := cmd.Flags().Lookup("input")
	require.NotNil(t, flag)

	_, hasRequired := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]
	assert.True(t, hasRequired, "input flag should be required")
}
