package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/repository/models"
	"quiz-practice/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id "id",
		content "content",
		options "options",
		answer "answer",
		explanation "explanation",
		category "category",
		answered "answered",
		created_at "created_at"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// SaveQuestion assigns ID and CreatedAt when unset, then inserts q.
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, q *domain.Question) error {
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now()
	}

	m := toModelQuestion(q)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO questions
		(id, content, options, answer, explanation, category, answered, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		m.ID, m.Content, m.Options, m.Answer, m.Explanation, m.Category, m.Answered, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// GetQuestionByID returns (nil, nil) when no question has id.
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)

	var m models.Question
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %s: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

// ListQuestions returns questions newest first. An empty category lists all.
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context, category string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var (
		rows []models.Question
		err  error
	)
	if category == "" {
		query := `SELECT ` + questionColumns + ` FROM questions ORDER BY created_at DESC, id DESC`
		err = exec.SelectContext(ctx, &rows, query)
	} else {
		query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE category = ? ORDER BY created_at DESC, id DESC`)
		err = exec.SelectContext(ctx, &rows, query, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

func (a *QuestionDatabaseAdapter) MarkAnswered(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE questions SET answered = 1 WHERE id = ?`)
	if _, err := exec.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark question %s answered: %w", id, err)
	}
	return nil
}

// now is truncated to the precision of an Oracle TIMESTAMP.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:          q.ID,
		Content:     util.StringToNullString(q.Content),
		Options:     models.Options(q.Options),
		Answer:      util.StringToNullString(q.Answer),
		Explanation: util.StringToNullString(q.Explanation),
		Category:    q.Category,
		Answered:    util.BoolToInt(q.Answered),
		CreatedAt:   q.CreatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	options := []string(m.Options)
	if options == nil {
		options = []string{}
	}
	return &domain.Question{
		ID:          m.ID,
		Content:     m.Content.String,
		Options:     options,
		Answer:      m.Answer.String,
		Explanation: m.Explanation.String,
		Category:    m.Category,
		Answered:    m.Answered != 0,
		CreatedAt:   m.CreatedAt,
	}
}
