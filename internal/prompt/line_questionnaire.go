package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	questionLineTemplateConstant        = "%s\n"
	choiceLineTemplateConstant          = "  %d) %s\n"
	answerMarkerConstant                = "> "
	confirmSuffixFalseConstant          = " [y/N] "
	confirmSuffixTrueConstant           = " [Y/n] "
	validationErrorLineTemplateConstant = "%s\n"
	invalidChoiceMessageConstant        = "Please pick one of the listed options."
	invalidConfirmMessageConstant       = "Please answer yes or no."
	displayLineTemplateConstant         = "  %s\n"
	newlineCharacterConstant            = '\n'
	affirmativeShortAnswerConstant      = "y"
	affirmativeLongAnswerConstant       = "yes"
	negativeShortAnswerConstant         = "n"
	negativeLongAnswerConstant          = "no"
)

// LineQuestionnaire asks questions over a line-oriented reader and writer.
type LineQuestionnaire struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineQuestionnaire constructs a questionnaire from the provided reader and writer.
func NewLineQuestionnaire(input io.Reader, output io.Writer) *LineQuestionnaire {
	if output == nil {
		output = io.Discard
	}
	return &LineQuestionnaire{reader: bufio.NewReader(input), writer: output}
}

// Ask prompts each question in order, repeating a question until its answer is acceptable.
func (questionnaire *LineQuestionnaire) Ask(executionContext context.Context, questions []Question) (Answers, error) {
	answers := NewAnswers(nil)
	for _, question := range questions {
		if contextError := executionContext.Err(); contextError != nil {
			return Answers{}, contextError
		}
		if declarationError := question.checkDeclaration(); declarationError != nil {
			return Answers{}, fmt.Errorf(questionErrorTemplateConstant, question.Name, declarationError)
		}
		if question.skipped(answers) {
			continue
		}

		answer, askError := questionnaire.askOne(executionContext, question)
		if askError != nil {
			return Answers{}, fmt.Errorf(questionErrorTemplateConstant, question.Name, askError)
		}
		answers.record(question.Name, answer)
	}
	return answers, nil
}

func (questionnaire *LineQuestionnaire) askOne(executionContext context.Context, question Question) (string, error) {
	for {
		if contextError := executionContext.Err(); contextError != nil {
			return "", contextError
		}
		if writeError := questionnaire.writeQuestion(question); writeError != nil {
			return "", writeError
		}

		response, readError := questionnaire.readLine()
		if readError != nil {
			return "", readError
		}

		answer, rejection := interpretResponse(question, response)
		if rejection != nil {
			if _, writeError := fmt.Fprintf(questionnaire.writer, validationErrorLineTemplateConstant, rejection.Error()); writeError != nil {
				return "", writeError
			}
			continue
		}

		if question.Display != nil {
			if _, writeError := fmt.Fprintf(questionnaire.writer, displayLineTemplateConstant, question.Display(answer)); writeError != nil {
				return "", writeError
			}
		}
		return answer, nil
	}
}

func (questionnaire *LineQuestionnaire) writeQuestion(question Question) error {
	switch question.Kind {
	case KindConfirm:
		suffix := confirmSuffixFalseConstant
		if defaultConfirmed, parseError := strconv.ParseBool(question.Default); parseError == nil && defaultConfirmed {
			suffix = confirmSuffixTrueConstant
		}
		_, writeError := io.WriteString(questionnaire.writer, question.Message+suffix)
		return writeError
	case KindSelect:
		if _, writeError := fmt.Fprintf(questionnaire.writer, questionLineTemplateConstant, question.Message); writeError != nil {
			return writeError
		}
		for choiceIndex, choice := range question.Choices {
			if _, writeError := fmt.Fprintf(questionnaire.writer, choiceLineTemplateConstant, choiceIndex+1, choice.Label); writeError != nil {
				return writeError
			}
		}
	default:
		if _, writeError := fmt.Fprintf(questionnaire.writer, questionLineTemplateConstant, question.Message); writeError != nil {
			return writeError
		}
	}
	_, writeError := io.WriteString(questionnaire.writer, answerMarkerConstant)
	return writeError
}

func (questionnaire *LineQuestionnaire) readLine() (string, error) {
	response, readError := questionnaire.reader.ReadString(newlineCharacterConstant)
	if readError != nil {
		if errors.Is(readError, io.EOF) && len(response) > 0 {
			return strings.TrimSpace(response), nil
		}
		if errors.Is(readError, io.EOF) {
			return "", ErrInputClosed
		}
		return "", readError
	}
	return strings.TrimSpace(response), nil
}

func interpretResponse(question Question, response string) (string, error) {
	if len(response) == 0 {
		response = question.Default
	}

	switch question.Kind {
	case KindSelect:
		return matchChoice(question.Choices, response)
	case KindConfirm:
		return interpretConfirmation(response)
	default:
		if validationError := question.validate(response); validationError != nil {
			return "", validationError
		}
		return response, nil
	}
}

func matchChoice(choices []Choice, response string) (string, error) {
	if choiceNumber, parseError := strconv.Atoi(response); parseError == nil {
		if choiceNumber >= 1 && choiceNumber <= len(choices) {
			return choices[choiceNumber-1].Value, nil
		}
		return "", errors.New(invalidChoiceMessageConstant)
	}
	for _, choice := range choices {
		if strings.EqualFold(choice.Value, response) || strings.EqualFold(choice.Label, response) {
			return choice.Value, nil
		}
	}
	return "", errors.New(invalidChoiceMessageConstant)
}

func interpretConfirmation(response string) (string, error) {
	switch strings.ToLower(response) {
	case "":
		return strconv.FormatBool(false), nil
	case affirmativeShortAnswerConstant, affirmativeLongAnswerConstant:
		return strconv.FormatBool(true), nil
	case negativeShortAnswerConstant, negativeLongAnswerConstant:
		return strconv.FormatBool(false), nil
	}
	if parsedValue, parseError := strconv.ParseBool(response); parseError == nil {
		return strconv.FormatBool(parsedValue), nil
	}
	return "", errors.New(invalidConfirmMessageConstant)
}
