package repository

import (
	"context"
	"fmt"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/repository/models"
	"quiz-practice/internal/util"

	"github.com/jmoiron/sqlx"
)

// RecordDatabaseAdapter implements domain.RecordRepository using sqlx.
type RecordDatabaseAdapter struct {
	db *sqlx.DB
}

func NewRecordDatabaseAdapter(db *sqlx.DB) domain.RecordRepository {
	return &RecordDatabaseAdapter{db: db}
}

func (a *RecordDatabaseAdapter) CreateRecord(ctx context.Context, r *domain.Record) error {
	if r.ID == "" {
		r.ID = util.NewULID()
	}
	if r.AnsweredAt.IsZero() {
		r.AnsweredAt = now()
	}

	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO records (id, question_id, user_answer, is_correct, answered_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		r.ID, r.QuestionID, util.StringToNullString(r.UserAnswer), util.BoolToInt(r.IsCorrect), r.AnsweredAt)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// ListRecordsWithQuestions returns every record newest first, joined with
// the question it answers.
func (a *RecordDatabaseAdapter) ListRecordsWithQuestions(ctx context.Context) ([]*domain.RecordWithQuestion, error) {
	exec := GetExecutor(ctx, a.db)
	query := `SELECT
		r.id "record_id",
		r.user_answer "user_answer",
		r.is_correct "is_correct",
		r.answered_at "answered_at",
		q.id "question_id",
		q.content "content",
		q.options "options",
		q.answer "answer",
		q.explanation "explanation",
		q.category "category",
		q.answered "answered",
		q.created_at "created_at"
	FROM records r
	JOIN questions q ON q.id = r.question_id
	ORDER BY r.answered_at DESC, r.id DESC`

	var rows []models.RecordWithQuestion
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	out := make([]*domain.RecordWithQuestion, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainRecordWithQuestion(&rows[i]))
	}
	return out, nil
}

func toDomainRecordWithQuestion(m *models.RecordWithQuestion) *domain.RecordWithQuestion {
	return &domain.RecordWithQuestion{
		Record: &domain.Record{
			ID:         m.RecordID,
			QuestionID: m.QuestionID,
			UserAnswer: m.UserAnswer.String,
			IsCorrect:  m.IsCorrect != 0,
			AnsweredAt: m.AnsweredAt,
		},
		Question: toDomainQuestion(&models.Question{
			ID:          m.QuestionID,
			Content:     m.QuestionContent,
			Options:     m.QuestionOptions,
			Answer:      m.QuestionAnswer,
			Explanation: m.QuestionExplanation,
			Category:    m.QuestionCategory,
			Answered:    m.QuestionAnswered,
			CreatedAt:   m.QuestionCreatedAt,
		}),
	}
}
