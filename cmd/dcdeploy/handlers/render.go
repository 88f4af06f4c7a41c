package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/dcdeploy/internal/provisioning/deploy"
	"github.com/imamik/dcdeploy/internal/provisioning/destroy"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorAmber = lipgloss.Color("#f59e0b")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorAmber)
)

// renderDeploySummary produces the summary printed after a deploy run.
func renderDeploySummary(out *deploy.Outcome, runErr error) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  dcdeploy deploy"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %-12s %s\n", "Run", out.RunID)
	for _, z := range out.Zones {
		fmt.Fprintf(&b, "  %-12s %s %s\n", "Zone", z.Name, dimStyle.Render("("+z.ID+")"))
	}
	fmt.Fprintf(&b, "  %-12s %d\n", "Resources", out.Ledger.Len())

	switch {
	case out.Location != "":
		fmt.Fprintf(&b, "  %-12s %s\n", "Ledger", out.Location)
	case out.PersistErr != nil:
		fmt.Fprintf(&b, "  %-12s %s\n", "Ledger", warnStyle.Render("not saved: "+out.PersistErr.Error()))
	}

	b.WriteString("\n")
	switch {
	case runErr == nil:
		b.WriteString(okStyle.Render("  Deployment complete"))
	case out.RolledBack && out.Teardown != nil && out.Teardown.Failed == 0:
		b.WriteString(warnStyle.Render(fmt.Sprintf("  Deployment failed, rolled back %d resources", out.Teardown.Deleted)))
	case out.RolledBack:
		b.WriteString(failStyle.Render("  Deployment failed, rollback incomplete"))
	default:
		b.WriteString(failStyle.Render("  Deployment failed"))
	}
	b.WriteString("\n")

	if out.Teardown != nil {
		renderFailures(&b, out.Teardown.Failures)
	}
	return b.String()
}

// renderRemoveSummary produces the summary printed after a remove run.
func renderRemoveSummary(ledgerPath string, result *destroy.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  dcdeploy remove: " + ledgerPath))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %-12s %s\n", "Deleted", okStyle.Render(fmt.Sprint(result.Deleted)))
	failed := fmt.Sprint(result.Failed)
	if result.Failed > 0 {
		failed = failStyle.Render(failed)
	}
	fmt.Fprintf(&b, "  %-12s %s\n", "Failed", failed)

	renderFailures(&b, result.Failures)
	return b.String()
}

func renderFailures(b *strings.Builder, failures []destroy.Failure) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("\n")
	for _, f := range failures {
		fmt.Fprintf(b, "  %s %s %s: %v\n", failStyle.Render("✗"), f.Type, f.ID, f.Err)
	}
}
