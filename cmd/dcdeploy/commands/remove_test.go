package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	cmd := Remove()

	require.NotNil(t, cmd)
	assert.Equal(t, "remove", cmd.Use)
	assert.Equal(t, "Remove the resources recorded in a deploy ledger", cmd.Short)
	assert.Contains(t, cmd.Long, "WARNING")
	assert.NotNil(t, cmd.RunE)
}

func TestRemove_Flags(t *testing.T) {
	cmd := Remove()

	for _, name := range []string{"input", "remove"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		_, hasRequired := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]
		assert.True(t, hasRequired, "%s flag should be required", name)
	}

	assert.Equal(t, "i", cmd.Flags().Lookup("input").Shorthand)
	assert.Equal(t, "r", cmd.Flags().Lookup("remove").Shorthand)

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "y", yes.Shorthand)
	assert.Equal(t, "false", yes.DefValue)
}
