package domain

import "context"

// QuestionRepository persists questions.
type QuestionRepository interface {
	// SaveQuestion assigns ID and CreatedAt.
	SaveQuestion(ctx context.Context, question *Question) error
	// GetQuestionByID returns (nil, nil) when no question has the id.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	// ListQuestions returns newest first; an empty category means all.
	ListQuestions(ctx context.Context, category string) ([]*Question, error)
	MarkAnswered(ctx context.Context, id string) error
}

// RecordRepository persists answer records.
type RecordRepository interface {
	// CreateRecord assigns ID.
	CreateRecord(ctx context.Context, record *Record) error
	// ListRecordsWithQuestions returns newest first.
	ListRecordsWithQuestions(ctx context.Context) ([]*RecordWithQuestion, error)
}

// TransactionManager runs fn inside one database transaction. Repositories
// called with the context passed to fn take part in that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
