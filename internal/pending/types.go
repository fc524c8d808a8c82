package pending

import (
	"errors"
	"fmt"
	"strings"
)

const (
	unknownExistingFileStrategyMessageConstant  = "unknown existing file strategy"
	unknownExistingFileStrategyTemplateConstant = "%w %q (expected ask, append or drop)"
)

// ChangeType classifies a changelog entry.
type ChangeType string

// Supported change types.
const (
	ChangeTypeAdded      ChangeType = ChangeType("Added")
	ChangeTypeChanged    ChangeType = ChangeType("Changed")
	ChangeTypeFixed      ChangeType = ChangeType("Fixed")
	ChangeTypeSecurity   ChangeType = ChangeType("Security")
	ChangeTypeDeprecated ChangeType = ChangeType("Deprecated")
)

// ReferenceType names the GitHub resource a change points at. The values double as URL path segments.
type ReferenceType string

// Supported reference types.
const (
	ReferenceTypeIssue       ReferenceType = ReferenceType("issues")
	ReferenceTypePullRequest ReferenceType = ReferenceType("pull")
	ReferenceTypeNone        ReferenceType = ReferenceType("none")
)

// ChangeRecord is one collected changelog entry.
type ChangeRecord struct {
	Type          ChangeType
	Content       string
	ReferenceType ReferenceType
	ReferenceID   string
	Author        string
}

// Session holds the records gathered by a single collection, in the order they were entered.
type Session struct {
	Records []ChangeRecord
}

// ExistingFileStrategy decides what happens to a pending file left by an earlier run.
type ExistingFileStrategy string

// Supported strategies.
const (
	ExistingFileAsk    ExistingFileStrategy = ExistingFileStrategy("ask")
	ExistingFileAppend ExistingFileStrategy = ExistingFileStrategy("append")
	ExistingFileDrop   ExistingFileStrategy = ExistingFileStrategy("drop")
)

// ErrUnknownExistingFileStrategy indicates a strategy outside ask, append and drop.
var ErrUnknownExistingFileStrategy = errors.New(unknownExistingFileStrategyMessageConstant)

// ParseExistingFileStrategy converts user input into a strategy. Blank input selects ask.
func ParseExistingFileStrategy(rawValue string) (ExistingFileStrategy, error) {
	normalizedValue := ExistingFileStrategy(strings.ToLower(strings.TrimSpace(rawValue)))
	switch normalizedValue {
	case "":
		return ExistingFileAsk, nil
	case ExistingFileAsk, ExistingFileAppend, ExistingFileDrop:
		return normalizedValue, nil
	default:
		return "", fmt.Errorf(unknownExistingFileStrategyTemplateConstant, ErrUnknownExistingFileStrategy, rawValue)
	}
}

// UnmarshalText lets configuration decoding reject unknown strategies.
func (strategy *ExistingFileStrategy) UnmarshalText(text []byte) error {
	parsedStrategy, parseError := ParseExistingFileStrategy(string(text))
	if parseError != nil {
		return parseError
	}
	*strategy = parsedStrategy
	return nil
}

// Options configures a single merge.
type Options struct {
	RepositoryPath     string
	PendingChangesPath string
	Commit             bool
	CommitMessage      string
	ExistingFile       ExistingFileStrategy
	RepositorySlug     string
	RemoteName         string
}

// Result reports what a merge did.
type Result struct {
	BranchName        string
	FilePath          string
	Appended          bool
	Dropped           bool
	RecordCount       int
	Committed         bool
	BranchUnavailable bool
}
