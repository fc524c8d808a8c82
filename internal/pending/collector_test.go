package pending_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pending/internal/pending"
	"github.com/temirov/pending/internal/prompt"
)

func TestCollectorLoopsWhileOperatorAsksAgain(testInstance *testing.T) {
	questionnaire := &scriptedQuestionnaire{responses: []prompt.Answers{
		recordAnswers(pending.ChangeTypeAdded, "first", pending.ReferenceTypeIssue, "1", "alice", true),
		recordAnswers(pending.ChangeTypeChanged, "second", pending.ReferenceTypeNone, "", "bob", true),
		recordAnswers(pending.ChangeTypeDeprecated, "third", pending.ReferenceTypePullRequest, "#3", "carol", false),
	}}
	collector, creationError := pending.NewCollector(questionnaire)
	require.NoError(testInstance, creationError)

	session, collectError := collector.Collect(context.Background())
	require.NoError(testInstance, collectError)

	require.Equal(testInstance, []pending.ChangeRecord{
		{Type: pending.ChangeTypeAdded, Content: "first", ReferenceType: pending.ReferenceTypeIssue, ReferenceID: "1", Author: "alice"},
		{Type: pending.ChangeTypeChanged, Content: "second", ReferenceType: pending.ReferenceTypeNone, Author: "bob"},
		{Type: pending.ChangeTypeDeprecated, Content: "third", ReferenceType: pending.ReferenceTypePullRequest, ReferenceID: "#3", Author: "carol"},
	}, session.Records)
	require.Len(testInstance, questionnaire.askedQuestions, 3)
	require.Equal(testInstance, []string{"type", "content", "referenceType", "referenceId", "author", "askAgain"}, questionnaire.askedQuestions[0])
}

func TestCollectorSessionsAreIndependent(testInstance *testing.T) {
	questionnaire := &scriptedQuestionnaire{responses: []prompt.Answers{
		recordAnswers(pending.ChangeTypeAdded, "first", pending.ReferenceTypeIssue, "1", "alice", false),
		recordAnswers(pending.ChangeTypeFixed, "second", pending.ReferenceTypeIssue, "2", "bob", false),
	}}
	collector, creationError := pending.NewCollector(questionnaire)
	require.NoError(testInstance, creationError)

	firstSession, firstError := collector.Collect(context.Background())
	require.NoError(testInstance, firstError)
	secondSession, secondError := collector.Collect(context.Background())
	require.NoError(testInstance, secondError)

	require.Len(testInstance, firstSession.Records, 1)
	require.Len(testInstance, secondSession.Records, 1)
	require.Equal(testInstance, "second", secondSession.Records[0].Content)
}

func TestCollectorReportsQuestionnaireFailures(testInstance *testing.T) {
	inputClosed := &scriptedQuestionnaire{
		responses: []prompt.Answers{recordAnswers(pending.ChangeTypeAdded, "first", pending.ReferenceTypeIssue, "1", "alice", true)},
		failures:  map[int]error{1: prompt.ErrInputClosed},
	}
	collector, creationError := pending.NewCollector(inputClosed)
	require.NoError(testInstance, creationError)

	session, collectError := collector.Collect(context.Background())
	require.ErrorIs(testInstance, collectError, prompt.ErrInputClosed)
	require.ErrorContains(testInstance, collectError, "change 2")
	require.Empty(testInstance, session.Records)
}

func TestCollectorRejectsIncompleteAnswers(testInstance *testing.T) {
	testCases := []struct {
		name    string
		answers prompt.Answers
	}{
		{name: "unknown_type", answers: recordAnswers(pending.ChangeType("Removed"), "x", pending.ReferenceTypeIssue, "1", "alice", false)},
		{name: "unknown_reference", answers: recordAnswers(pending.ChangeTypeAdded, "x", pending.ReferenceType("commit"), "1", "alice", false)},
		{name: "missing_content", answers: recordAnswers(pending.ChangeTypeAdded, " ", pending.ReferenceTypeIssue, "1", "alice", false)},
		{name: "missing_reference_id", answers: recordAnswers(pending.ChangeTypeAdded, "x", pending.ReferenceTypeIssue, "", "alice", false)},
		{name: "missing_author", answers: recordAnswers(pending.ChangeTypeAdded, "x", pending.ReferenceTypeNone, "", "", false)},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			collector, creationError := pending.NewCollector(&scriptedQuestionnaire{responses: []prompt.Answers{testCase.answers}})
			require.NoError(testInstance, creationError)

			_, collectError := collector.Collect(context.Background())
			require.ErrorIs(testInstance, collectError, pending.ErrIncompleteRecord)
		})
	}
}

func TestNewCollectorRequiresQuestionnaire(testInstance *testing.T) {
	collector, creationError := pending.NewCollector(nil)
	require.True(testInstance, errors.Is(creationError, pending.ErrQuestionnaireNotConfigured))
	require.Nil(testInstance, collector)
}
