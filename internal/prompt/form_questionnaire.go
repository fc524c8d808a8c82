package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
)

const (
	confirmAffirmativeLabelConstant = "Yes"
	confirmNegativeLabelConstant    = "No"
	formRunErrorTemplateConstant    = "interactive prompt failed: %w"
)

// FormQuestionnaire renders questions as an interactive huh form.
type FormQuestionnaire struct {
	theme  *huh.Theme
	input  io.Reader
	output io.Writer
}

// FormOption customizes a FormQuestionnaire.
type FormOption func(*FormQuestionnaire)

// WithFormInput reads key presses from the provided reader instead of the terminal.
func WithFormInput(input io.Reader) FormOption {
	return func(questionnaire *FormQuestionnaire) {
		questionnaire.input = input
	}
}

// WithFormOutput renders the form to the provided writer.
func WithFormOutput(output io.Writer) FormOption {
	return func(questionnaire *FormQuestionnaire) {
		questionnaire.output = output
	}
}

// NewFormQuestionnaire constructs a questionnaire using the Charm theme.
func NewFormQuestionnaire(options ...FormOption) *FormQuestionnaire {
	questionnaire := &FormQuestionnaire{theme: huh.ThemeCharm()}
	for _, option := range options {
		option(questionnaire)
	}
	return questionnaire
}

// boundAnswer keeps the value a huh field writes into.
type boundAnswer struct {
	question  Question
	text      string
	confirmed bool
}

func (answer *boundAnswer) value() string {
	if answer.question.Kind == KindConfirm {
		return strconv.FormatBool(answer.confirmed)
	}
	return answer.text
}

// Ask renders one group per question so skipped questions can be hidden while the form runs.
func (questionnaire *FormQuestionnaire) Ask(executionContext context.Context, questions []Question) (Answers, error) {
	boundAnswers := make([]*boundAnswer, 0, len(questions))
	for _, question := range questions {
		if declarationError := question.checkDeclaration(); declarationError != nil {
			return Answers{}, fmt.Errorf(questionErrorTemplateConstant, question.Name, declarationError)
		}
		boundAnswers = append(boundAnswers, newBoundAnswer(question))
	}

	groups := make([]*huh.Group, 0, len(boundAnswers))
	for answerIndex, answer := range boundAnswers {
		group := huh.NewGroup(buildField(answer))
		if answer.question.Skip != nil {
			precedingAnswers := boundAnswers[:answerIndex]
			skipFunction := answer.question.Skip
			group = group.WithHideFunc(func() bool {
				return skipFunction(snapshotAnswers(precedingAnswers))
			})
		}
		groups = append(groups, group)
	}

	form := huh.NewForm(groups...).WithTheme(questionnaire.theme)
	if questionnaire.input != nil {
		form = form.WithInput(questionnaire.input)
	}
	if questionnaire.output != nil {
		form = form.WithOutput(questionnaire.output)
	}

	if runError := form.RunWithContext(executionContext); runError != nil {
		if errors.Is(runError, huh.ErrUserAborted) {
			return Answers{}, ErrPromptAborted
		}
		return Answers{}, fmt.Errorf(formRunErrorTemplateConstant, runError)
	}

	answers := NewAnswers(nil)
	for _, answer := range boundAnswers {
		if answer.question.skipped(answers) {
			continue
		}
		answers.record(answer.question.Name, answer.value())
	}
	return answers, nil
}

func newBoundAnswer(question Question) *boundAnswer {
	answer := &boundAnswer{question: question, text: question.Default}
	if question.Kind == KindConfirm {
		answer.confirmed, _ = strconv.ParseBool(question.Default)
	}
	return answer
}

func snapshotAnswers(boundAnswers []*boundAnswer) Answers {
	answers := NewAnswers(nil)
	for _, answer := range boundAnswers {
		answers.record(answer.question.Name, answer.value())
	}
	return answers
}

func buildField(answer *boundAnswer) huh.Field {
	question := answer.question
	switch question.Kind {
	case KindSelect:
		options := make([]huh.Option[string], 0, len(question.Choices))
		for _, choice := range question.Choices {
			options = append(options, huh.NewOption(choice.Label, choice.Value))
		}
		return huh.NewSelect[string]().
			Key(question.Name).
			Title(question.Message).
			Options(options...).
			Value(&answer.text)
	case KindConfirm:
		return huh.NewConfirm().
			Key(question.Name).
			Title(question.Message).
			Affirmative(confirmAffirmativeLabelConstant).
			Negative(confirmNegativeLabelConstant).
			Value(&answer.confirmed)
	default:
		input := huh.NewInput().
			Key(question.Name).
			Title(question.Message).
			Value(&answer.text).
			Validate(question.validate)
		if question.Display != nil {
			displayFunction := question.Display
			input = input.DescriptionFunc(func() string {
				return displayFunction(answer.text)
			}, &answer.text)
		}
		return input
	}
}
