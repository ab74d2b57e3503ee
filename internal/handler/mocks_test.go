package handler_test

import (
	"context"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/service"
)

// --- Manual Mocks ---

type MockGenerationService struct {
	GenerateFunc func(ctx context.Context, category string, count int) (*domain.GenerationResult, error)
}

func (m *MockGenerationService) Generate(ctx context.Context, category string, count int) (*domain.GenerationResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, category, count)
	}
	panic("MockGenerationService.GenerateFunc not implemented")
}

type MockQuestionService struct {
	ListQuestionsFunc  func(ctx context.Context, category string) ([]*domain.Question, error)
	CreateQuestionFunc func(ctx context.Context, question *domain.Question) (*domain.Question, error)
	RecordAnswerFunc   func(ctx context.Context, questionID, userAnswer string) (*domain.Record, error)
	ListRecordsFunc    func(ctx context.Context) ([]*domain.RecordWithQuestion, error)
}

func (m *MockQuestionService) ListQuestions(ctx context.Context, category string) ([]*domain.Question, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, category)
	}
	panic("MockQuestionService.ListQuestionsFunc not implemented")
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, question)
	}
	panic("MockQuestionService.CreateQuestionFunc not implemented")
}

func (m *MockQuestionService) RecordAnswer(ctx context.Context, questionID, userAnswer string) (*domain.Record, error) {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(ctx, questionID, userAnswer)
	}
	panic("MockQuestionService.RecordAnswerFunc not implemented")
}

func (m *MockQuestionService) ListRecords(ctx context.Context) ([]*domain.RecordWithQuestion, error) {
	if m.ListRecordsFunc != nil {
		return m.ListRecordsFunc(ctx)
	}
	panic("MockQuestionService.ListRecordsFunc not implemented")
}

type MockScheduler struct {
	StartFunc func(category string) error
	Stopped   int
	State     service.SchedulerStatus
}

func (m *MockScheduler) Start(category string) error {
	if m.StartFunc != nil {
		if err := m.StartFunc(category); err != nil {
			return err
		}
	}
	m.State.Running = true
	m.State.Category = category
	return nil
}

func (m *MockScheduler) Stop() {
	m.Stopped++
	m.State.Running = false
}

func (m *MockScheduler) Status() service.SchedulerStatus {
	return m.State
}

type MockPinger struct {
	Err error
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Err
}
