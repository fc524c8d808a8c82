package pending

import "strings"

const branchSeparatorReplacementConstant = "_"

var branchSeparatorReplacer = strings.NewReplacer(
	"/", branchSeparatorReplacementConstant,
	"\\", branchSeparatorReplacementConstant,
)

// SanitizeBranchName turns a branch name into a single path component.
func SanitizeBranchName(branchName string) string {
	return branchSeparatorReplacer.Replace(strings.TrimSpace(branchName))
}
