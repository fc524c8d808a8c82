package pending

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/temirov/pending/internal/prompt"
)

const (
	questionnaireNotConfiguredMessageConstant = "questionnaire not configured"
	incompleteRecordMessageConstant           = "change record is incomplete"
	collectionErrorTemplateConstant           = "unable to collect change %d: %w"
	unexpectedAnswerTemplateConstant          = "%w: %s=%q"
	missingAnswerTemplateConstant             = "%w: %s is empty"
)

// ErrQuestionnaireNotConfigured indicates a collector or service was constructed without a questionnaire.
var ErrQuestionnaireNotConfigured = errors.New(questionnaireNotConfiguredMessageConstant)

// ErrIncompleteRecord indicates a questionnaire returned answers that cannot form a record.
var ErrIncompleteRecord = errors.New(incompleteRecordMessageConstant)

var (
	knownChangeTypes    = []ChangeType{ChangeTypeAdded, ChangeTypeChanged, ChangeTypeFixed, ChangeTypeSecurity, ChangeTypeDeprecated}
	knownReferenceTypes = []ReferenceType{ReferenceTypeIssue, ReferenceTypePullRequest, ReferenceTypeNone}
)

// Collector gathers change records until the operator declines to add another.
type Collector struct {
	questionnaire Questionnaire
}

// NewCollector constructs a Collector around the questionnaire.
func NewCollector(questionnaire Questionnaire) (*Collector, error) {
	if questionnaire == nil {
		return nil, ErrQuestionnaireNotConfigured
	}
	return &Collector{questionnaire: questionnaire}, nil
}

// Collect asks for records until askAgain is declined. The returned session belongs to the caller.
func (collector *Collector) Collect(executionContext context.Context) (Session, error) {
	session := Session{}
	for {
		recordNumber := len(session.Records) + 1
		answers, askError := collector.questionnaire.Ask(executionContext, RecordQuestions())
		if askError != nil {
			return Session{}, fmt.Errorf(collectionErrorTemplateConstant, recordNumber, askError)
		}

		record, recordError := recordFromAnswers(answers)
		if recordError != nil {
			return Session{}, fmt.Errorf(collectionErrorTemplateConstant, recordNumber, recordError)
		}
		session.Records = append(session.Records, record)

		if !answers.Confirmed(QuestionNameAskAgain) {
			return session, nil
		}
	}
}

func recordFromAnswers(answers prompt.Answers) (ChangeRecord, error) {
	record := ChangeRecord{
		Type:          ChangeType(answers.Text(QuestionNameType)),
		Content:       answers.Text(QuestionNameContent),
		ReferenceType: ReferenceType(answers.Text(QuestionNameReferenceType)),
		ReferenceID:   answers.Text(QuestionNameReferenceID),
		Author:        answers.Text(QuestionNameAuthor),
	}

	if !lo.Contains(knownChangeTypes, record.Type) {
		return ChangeRecord{}, fmt.Errorf(unexpectedAnswerTemplateConstant, ErrIncompleteRecord, QuestionNameType, record.Type)
	}
	if !lo.Contains(knownReferenceTypes, record.ReferenceType) {
		return ChangeRecord{}, fmt.Errorf(unexpectedAnswerTemplateConstant, ErrIncompleteRecord, QuestionNameReferenceType, record.ReferenceType)
	}

	requiredNames := []string{QuestionNameContent, QuestionNameAuthor}
	if record.ReferenceType != ReferenceTypeNone {
		requiredNames = append(requiredNames, QuestionNameReferenceID)
	}
	missingNames := lo.Filter(requiredNames, func(name string, _ int) bool {
		return len(strings.TrimSpace(answers.Text(name))) == 0
	})
	if len(missingNames) > 0 {
		return ChangeRecord{}, fmt.Errorf(missingAnswerTemplateConstant, ErrIncompleteRecord, strings.Join(missingNames, ", "))
	}

	return record, nil
}
