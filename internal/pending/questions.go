package pending

import (
	"errors"
	"strings"

	"github.com/temirov/pending/internal/prompt"
)

// Question names used when collecting a record.
const (
	QuestionNameType          = "type"
	QuestionNameContent       = "content"
	QuestionNameReferenceType = "referenceType"
	QuestionNameReferenceID   = "referenceId"
	QuestionNameAuthor        = "author"
	QuestionNameAskAgain      = "askAgain"
	QuestionNameExistingFile  = "existingFile"
)

const (
	typeQuestionMessageConstant          = "What type of change do you want to add to the changelog?"
	contentQuestionMessageConstant       = "What is the content of the change?"
	referenceTypeQuestionMessageConstant = "(mandatory) Which GitHub reference has this?"
	referenceIDQuestionMessageConstant   = "What is the id of the reference issue/PR on GitHub?"
	authorQuestionMessageConstant        = "What is your GitHub handle?"
	askAgainQuestionMessageConstant      = "Want to enter another change?"
	existingFileQuestionMessageConstant  = "Existing pending changes were found for your branch. How do you want to proceed?"
	contentRequiredMessageConstant       = "You need to specify the change."
	referenceIDRequiredMessageConstant   = "You need to specify the GitHub reference."
	authorRequiredMessageConstant        = "You need to specify your GitHub handle."
	referenceIDPrefixConstant            = "#"
	askAgainDefaultConstant              = "false"
)

var (
	errContentRequired     = errors.New(contentRequiredMessageConstant)
	errReferenceIDRequired = errors.New(referenceIDRequiredMessageConstant)
	errAuthorRequired      = errors.New(authorRequiredMessageConstant)
)

var changeTypeChoices = []prompt.Choice{
	{Label: "Addition of feature", Value: string(ChangeTypeAdded)},
	{Label: "Change of existing behavior", Value: string(ChangeTypeChanged)},
	{Label: "Fix for a bug", Value: string(ChangeTypeFixed)},
	{Label: "Security improvement", Value: string(ChangeTypeSecurity)},
	{Label: "Deprecation of unused code/feature", Value: string(ChangeTypeDeprecated)},
}

var referenceTypeChoices = []prompt.Choice{
	{Label: "Issue", Value: string(ReferenceTypeIssue)},
	{Label: "Pull Request", Value: string(ReferenceTypePullRequest)},
	{Label: "(Avoid) None", Value: string(ReferenceTypeNone)},
}

var existingFileChoices = []prompt.Choice{
	{Label: "Append changes", Value: string(ExistingFileAppend)},
	{Label: "Delete old change", Value: string(ExistingFileDrop)},
}

// RecordQuestions returns the questions asked for every change record.
func RecordQuestions() []prompt.Question {
	return []prompt.Question{
		{
			Name:    QuestionNameType,
			Kind:    prompt.KindSelect,
			Message: typeQuestionMessageConstant,
			Choices: changeTypeChoices,
		},
		{
			Name:     QuestionNameContent,
			Kind:     prompt.KindInput,
			Message:  contentQuestionMessageConstant,
			Validate: validateContent,
		},
		{
			Name:    QuestionNameReferenceType,
			Kind:    prompt.KindSelect,
			Message: referenceTypeQuestionMessageConstant,
			Choices: referenceTypeChoices,
		},
		{
			Name:     QuestionNameReferenceID,
			Kind:     prompt.KindInput,
			Message:  referenceIDQuestionMessageConstant,
			Validate: validateReferenceID,
			Display:  displayReferenceID,
			Skip:     referenceNotRequired,
		},
		{
			Name:     QuestionNameAuthor,
			Kind:     prompt.KindInput,
			Message:  authorQuestionMessageConstant,
			Validate: validateAuthor,
		},
		{
			Name:    QuestionNameAskAgain,
			Kind:    prompt.KindConfirm,
			Message: askAgainQuestionMessageConstant,
			Default: askAgainDefaultConstant,
		},
	}
}

// ExistingFileQuestion asks how to reconcile a pending file left by an earlier run.
func ExistingFileQuestion() prompt.Question {
	return prompt.Question{
		Name:    QuestionNameExistingFile,
		Kind:    prompt.KindSelect,
		Message: existingFileQuestionMessageConstant,
		Choices: existingFileChoices,
	}
}

func validateContent(value string) error {
	return requireText(value, errContentRequired)
}

func validateReferenceID(value string) error {
	return requireText(value, errReferenceIDRequired)
}

func validateAuthor(value string) error {
	return requireText(value, errAuthorRequired)
}

func requireText(value string, missingError error) error {
	if len(strings.TrimSpace(value)) == 0 {
		return missingError
	}
	return nil
}

// displayReferenceID hides the first "#" while the operator types; the stored answer keeps it.
func displayReferenceID(value string) string {
	return strings.Replace(value, referenceIDPrefixConstant, "", 1)
}

func referenceNotRequired(answers prompt.Answers) bool {
	return ReferenceType(answers.Text(QuestionNameReferenceType)) == ReferenceTypeNone
}
