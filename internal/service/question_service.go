package service

import (
	"context"
	"errors"
	"strconv"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"
	"quiz-practice/internal/metrics"

	"go.uber.org/zap"
)

// QuestionService covers browsing, manual entry and answering.
type QuestionService interface {
	ListQuestions(ctx context.Context, category string) ([]*domain.Question, error)
	CreateQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error)
	RecordAnswer(ctx context.Context, questionID, userAnswer string) (*domain.Record, error)
	ListRecords(ctx context.Context) ([]*domain.RecordWithQuestion, error)
}

type questionService struct {
	questionRepo domain.QuestionRepository
	recordRepo   domain.RecordRepository
	txManager    domain.TransactionManager
}

func NewQuestionService(
	questionRepo domain.QuestionRepository,
	recordRepo domain.RecordRepository,
	txManager domain.TransactionManager,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		recordRepo:   recordRepo,
		txManager:    txManager,
	}
}

func (s *questionService) ListQuestions(ctx context.Context, category string) ([]*domain.Question, error) {
	questions, err := s.questionRepo.ListQuestions(ctx, category)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}
	return questions, nil
}

// CreateQuestion stores a manually written question. It must pass the same
// four-option rule generated questions are filtered by.
func (s *questionService) CreateQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if err := question.Validate(); err != nil {
		return nil, err
	}
	question.ID = ""
	question.Answered = false
	if err := s.questionRepo.SaveQuestion(ctx, question); err != nil {
		return nil, domain.NewPersistenceError("Failed to save question", err)
	}
	return question, nil
}

// RecordAnswer grades and stores an answer. The record insert and the
// answered flag are written in one transaction: both happen or neither.
func (s *questionService) RecordAnswer(ctx context.Context, questionID, userAnswer string) (*domain.Record, error) {
	var record *domain.Record

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		question, err := s.questionRepo.GetQuestionByID(txCtx, questionID)
		if err != nil {
			return domain.NewPersistenceError("Failed to load question", err)
		}
		if question == nil {
			return domain.NewQuestionNotFoundError(questionID)
		}

		record = domain.NewRecord(question, userAnswer)
		if err := s.recordRepo.CreateRecord(txCtx, record); err != nil {
			return domain.NewPersistenceError("Failed to save answer record", err)
		}
		if err := s.questionRepo.MarkAnswered(txCtx, questionID); err != nil {
			return domain.NewPersistenceError("Failed to mark question answered", err)
		}
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		// begin or commit failed
		return nil, domain.NewPersistenceError("Failed to record answer", err)
	}

	metrics.AnswersRecorded.WithLabelValues(strconv.FormatBool(record.IsCorrect)).Inc()
	logger.Get().Debug("Answer recorded",
		zap.String("questionId", questionID),
		zap.Bool("isCorrect", record.IsCorrect))
	return record, nil
}

func (s *questionService) ListRecords(ctx context.Context) ([]*domain.RecordWithQuestion, error) {
	records, err := s.recordRepo.ListRecordsWithQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list records", err)
	}
	return records, nil
}
