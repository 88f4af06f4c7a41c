package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "dcdeploy", cmd.Use)
	assert.Equal(t, "Provision data-center zones from a topology file", cmd.Short)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"deploy", "remove", "version"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestRoot_RemoveRequiresLedger(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"remove", "-i", "topology.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "remove" not set`)
}

func TestRoot_DeployStateFlagsExclusive(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"deploy", "-i", "topology.yaml", "--state-dir", "out", "--state-uri", "s3://bucket/ledgers"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}
