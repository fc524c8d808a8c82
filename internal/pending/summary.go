package pending

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	summaryTitleConstant             = "Pending changes"
	summaryBranchLabelConstant       = "branch"
	summaryFileLabelConstant         = "file"
	summaryRecordsLabelConstant      = "records"
	summaryModeLabelConstant         = "mode"
	summaryCommittedLabelConstant    = "committed"
	summaryModeCreatedConstant       = "created"
	summaryModeAppendedConstant      = "appended"
	summaryModeReplacedConstant      = "replaced"
	summaryYesConstant               = "yes"
	summaryNoConstant                = "no"
	summaryRowTemplateConstant       = "%s %s"
	summaryBranchUnavailableConstant = "No pending changes were recorded: the current directory is not on a git branch."
	summaryLabelWidthConstant        = 10
	summaryAccentColorConstant       = "#63AC67"
	summaryMutedColorConstant        = "#605E53"
	summaryWarningColorConstant      = "#ED567A"
)

var (
	summaryTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(summaryAccentColorConstant)).Bold(true)
	summaryLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(summaryMutedColorConstant)).Width(summaryLabelWidthConstant)
	summaryValueStyle   = lipgloss.NewStyle()
	summaryWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(summaryWarningColorConstant))
)

// RenderSummary describes a merge result for the terminal.
func RenderSummary(result Result) string {
	if result.BranchUnavailable {
		return summaryWarningStyle.Render(summaryBranchUnavailableConstant)
	}

	rows := []string{
		summaryTitleStyle.Render(summaryTitleConstant),
		summaryRow(summaryBranchLabelConstant, result.BranchName),
		summaryRow(summaryFileLabelConstant, result.FilePath),
		summaryRow(summaryRecordsLabelConstant, fmt.Sprint(result.RecordCount)),
		summaryRow(summaryModeLabelConstant, summaryMode(result)),
		summaryRow(summaryCommittedLabelConstant, yesNo(result.Committed)),
	}
	return strings.Join(rows, "\n")
}

func summaryRow(label string, value string) string {
	return fmt.Sprintf(summaryRowTemplateConstant, summaryLabelStyle.Render(label), summaryValueStyle.Render(value))
}

func summaryMode(result Result) string {
	switch {
	case result.Appended:
		return summaryModeAppendedConstant
	case result.Dropped:
		return summaryModeReplacedConstant
	default:
		return summaryModeCreatedConstant
	}
}

func yesNo(value bool) string {
	if value {
		return summaryYesConstant
	}
	return summaryNoConstant
}
