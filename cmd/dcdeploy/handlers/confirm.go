package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// promptRemoval asks for confirmation before deleting count resources.
func promptRemoval(ctx context.Context, ledgerPath string, count int) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %d resources recorded in %s?", count, ledgerPath)).
				Description("Deleted zones, hosts and storage cannot be restored.").
				Affirmative("Remove").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
