package pending_test

import (
	"context"
	"errors"
	"strconv"

	"github.com/temirov/pending/internal/pending"
	"github.com/temirov/pending/internal/prompt"
)

var errUnexpectedQuestion = errors.New("unexpected question")

type scriptedQuestionnaire struct {
	responses      []prompt.Answers
	failures       map[int]error
	askedQuestions [][]string
}

func (questionnaire *scriptedQuestionnaire) Ask(_ context.Context, questions []prompt.Question) (prompt.Answers, error) {
	callIndex := len(questionnaire.askedQuestions)
	questionNames := make([]string, 0, len(questions))
	for _, question := range questions {
		questionNames = append(questionNames, question.Name)
	}
	questionnaire.askedQuestions = append(questionnaire.askedQuestions, questionNames)

	if failure, failed := questionnaire.failures[callIndex]; failed {
		return prompt.Answers{}, failure
	}
	if callIndex >= len(questionnaire.responses) {
		return prompt.Answers{}, errUnexpectedQuestion
	}
	return questionnaire.responses[callIndex], nil
}

func recordAnswers(changeType pending.ChangeType, content string, referenceType pending.ReferenceType, referenceID string, author string, askAgain bool) prompt.Answers {
	values := map[string]string{
		pending.QuestionNameType:          string(changeType),
		pending.QuestionNameContent:       content,
		pending.QuestionNameReferenceType: string(referenceType),
		pending.QuestionNameAuthor:        author,
		pending.QuestionNameAskAgain:      strconv.FormatBool(askAgain),
	}
	if referenceType != pending.ReferenceTypeNone {
		values[pending.QuestionNameReferenceID] = referenceID
	}
	return prompt.NewAnswers(values)
}

func existingFileAnswer(strategy pending.ExistingFileStrategy) prompt.Answers {
	return prompt.NewAnswers(map[string]string{pending.QuestionNameExistingFile: string(strategy)})
}

type stubRepositoryManager struct {
	branchName     string
	branchError    error
	remoteURL      string
	remoteError    error
	stageError     error
	commitError    error
	stagedFiles    []string
	committedFiles []string
	commitMessages []string
	remoteLookups  []string
}

func (manager *stubRepositoryManager) GetCurrentBranch(context.Context, string) (string, error) {
	return manager.branchName, manager.branchError
}

func (manager *stubRepositoryManager) GetRemoteURL(_ context.Context, _ string, remoteName string) (string, error) {
	manager.remoteLookups = append(manager.remoteLookups, remoteName)
	return manager.remoteURL, manager.remoteError
}

func (manager *stubRepositoryManager) StageFile(_ context.Context, _ string, filePath string) error {
	manager.stagedFiles = append(manager.stagedFiles, filePath)
	return manager.stageError
}

func (manager *stubRepositoryManager) CommitFile(_ context.Context, _ string, filePath string, message string) error {
	manager.committedFiles = append(manager.committedFiles, filePath)
	manager.commitMessages = append(manager.commitMessages, message)
	return manager.commitError
}
