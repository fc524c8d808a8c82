package prompt

import (
	"errors"
	"strconv"
)

const (
	unknownQuestionKindMessageConstant = "unknown question kind"
	missingChoicesMessageConstant      = "select question has no choices"
	inputClosedMessageConstant         = "input closed before an answer was provided"
	promptAbortedMessageConstant       = "prompt aborted"
	questionErrorTemplateConstant      = "question %q: %w"
)

// Kind identifies how a question collects its answer.
type Kind string

// Supported question kinds.
const (
	KindSelect  Kind = Kind("select")
	KindInput   Kind = Kind("input")
	KindConfirm Kind = Kind("confirm")
)

// ErrUnknownQuestionKind indicates a question kind no questionnaire understands.
var ErrUnknownQuestionKind = errors.New(unknownQuestionKindMessageConstant)

// ErrMissingChoices indicates a select question was declared without choices.
var ErrMissingChoices = errors.New(missingChoicesMessageConstant)

// ErrInputClosed indicates the input stream ended before a question was answered.
var ErrInputClosed = errors.New(inputClosedMessageConstant)

// ErrPromptAborted indicates the operator cancelled the prompt.
var ErrPromptAborted = errors.New(promptAbortedMessageConstant)

// Choice is a single selectable option.
type Choice struct {
	Label string
	Value string
}

// Question declares one prompt. Validate runs on free text, Display only alters
// how an answer is presented and never the stored value, and Skip is evaluated
// against the answers gathered so far in the same Ask call.
type Question struct {
	Name     string
	Kind     Kind
	Message  string
	Choices  []Choice
	Validate func(string) error
	Display  func(string) string
	Default  string
	Skip     func(Answers) bool
}

func (question Question) skipped(answers Answers) bool {
	return question.Skip != nil && question.Skip(answers)
}

func (question Question) validate(value string) error {
	if question.Validate == nil {
		return nil
	}
	return question.Validate(value)
}

func (question Question) checkDeclaration() error {
	switch question.Kind {
	case KindSelect:
		if len(question.Choices) == 0 {
			return ErrMissingChoices
		}
	case KindInput, KindConfirm:
	default:
		return ErrUnknownQuestionKind
	}
	return nil
}

// Answers holds the values collected by a questionnaire keyed by question name.
type Answers struct {
	values map[string]string
}

// NewAnswers constructs Answers from raw values.
func NewAnswers(values map[string]string) Answers {
	copied := make(map[string]string, len(values))
	for name, value := range values {
		copied[name] = value
	}
	return Answers{values: copied}
}

// Text returns the answer recorded for the named question, or an empty string.
func (answers Answers) Text(name string) string {
	return answers.values[name]
}

// Confirmed reports whether the named confirm question was answered affirmatively.
func (answers Answers) Confirmed(name string) bool {
	confirmed, parseError := strconv.ParseBool(answers.values[name])
	return parseError == nil && confirmed
}

// Has reports whether the named question received an answer.
func (answers Answers) Has(name string) bool {
	_, present := answers.values[name]
	return present
}

func (answers *Answers) record(name string, value string) {
	if answers.values == nil {
		answers.values = map[string]string{}
	}
	answers.values[name] = value
}
