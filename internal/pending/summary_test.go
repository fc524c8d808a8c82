package pending_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pending/internal/pending"
)

func TestRenderSummaryDescribesResult(testInstance *testing.T) {
	summary := pending.RenderSummary(pending.Result{
		BranchName:  "feature/x",
		FilePath:    "/workspace/.pending/feature_x",
		RecordCount: 2,
		Appended:    true,
		Committed:   true,
	})

	require.Contains(testInstance, summary, "Pending changes")
	require.Contains(testInstance, summary, "feature/x")
	require.Contains(testInstance, summary, "/workspace/.pending/feature_x")
	require.Contains(testInstance, summary, "appended")
	require.Contains(testInstance, summary, "yes")
}

func TestRenderSummaryReportsMissingBranch(testInstance *testing.T) {
	summary := pending.RenderSummary(pending.Result{BranchUnavailable: true})
	require.Contains(testInstance, summary, "not on a git branch")
}
