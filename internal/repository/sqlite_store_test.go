package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"quiz-practice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_QuestionRoundTrip(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	ctx := context.Background()

	q := domain.NewQuestion("何者屬於對稱式加密？", []string{"AES", "RSA", "ECC", "DSA"}, "a", "AES 為對稱式區塊加密。", "技術")
	require.NoError(t, repo.SaveQuestion(ctx, q))

	got, err := repo.GetQuestionByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, q.Content, got.Content)
	assert.Equal(t, []string{"AES", "RSA", "ECC", "DSA"}, got.Options)
	assert.Equal(t, "a", got.Answer)
	assert.Equal(t, q.Explanation, got.Explanation)
	assert.False(t, got.Answered)
	assert.True(t, q.CreatedAt.Equal(got.CreatedAt))

	first, err := repo.ListQuestions(ctx, "技術")
	require.NoError(t, err)
	second, err := repo.ListQuestions(ctx, "技術")
	require.NoError(t, err)
	assert.Equal(t, first, second, "reads do not mutate")
}

func TestSQLite_ListQuestionsOrderAndFilter(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, category := range []string{"技術", "管理", "技術"} {
		q := domain.NewQuestion(fmt.Sprintf("%s%d", category, i), []string{"1", "2", "3", "4"}, "a", "E", category)
		q.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.SaveQuestion(ctx, q))
	}

	all, err := repo.ListQuestions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"技術2", "管理1", "技術0"}, []string{all[0].Content, all[1].Content, all[2].Content})

	tech, err := repo.ListQuestions(ctx, "技術")
	require.NoError(t, err)
	require.Len(t, tech, 2)
	assert.Equal(t, "技術2", tech[0].Content)

	none, err := repo.ListQuestions(ctx, "其他")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLite_LegacyOptionsAreNormalized(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewQuestionDatabaseAdapter(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO questions (id, content, options, answer, explanation, category, answered, created_at)
		VALUES ('01A', 'object', '{"a":"x","b":"y","c":"z","d":"w"}', 'a', '', '其他', 0, ?),
		       ('01B', 'broken', 'not json', 'a', '', '其他', 0, ?),
		       ('01C', 'indexed', '{"3":"d","1":"b","x":"e","0":"a","2":"c"}', 'a', '', '其他', 0, ?)`,
		time.Now().UTC(), time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)

	obj, err := repo.GetQuestionByID(ctx, "01A")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z", "w"}, obj.Options)

	indexed, err := repo.GetQuestionByID(ctx, "01C")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, indexed.Options)

	broken, err := repo.GetQuestionByID(ctx, "01B")
	require.NoError(t, err)
	assert.Equal(t, []string{}, broken.Options)
}

func TestSQLite_AnswerTransaction(t *testing.T) {
	db := setupSQLiteDB(t)
	questions := NewQuestionDatabaseAdapter(db)
	records := NewRecordDatabaseAdapter(db)
	tm := NewTransactionManagerAdapter(db)
	ctx := context.Background()

	q := domain.NewQuestion("Q", []string{"1", "2", "3", "4"}, "c", "E", "管理")
	require.NoError(t, questions.SaveQuestion(ctx, q))

	t.Run("FailedSecondWriteLeavesNoRecord", func(t *testing.T) {
		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			if err := records.CreateRecord(ctx, domain.NewRecord(q, "a")); err != nil {
				return err
			}
			return errors.New("simulated failure after first write")
		})
		require.Error(t, err)

		history, err := records.ListRecordsWithQuestions(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("CommittedAnswer", func(t *testing.T) {
		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			if err := records.CreateRecord(ctx, domain.NewRecord(q, "c")); err != nil {
				return err
			}
			return questions.MarkAnswered(ctx, q.ID)
		})
		require.NoError(t, err)

		got, err := questions.GetQuestionByID(ctx, q.ID)
		require.NoError(t, err)
		assert.True(t, got.Answered)

		history, err := records.ListRecordsWithQuestions(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, history[0].Record.IsCorrect)
		assert.Equal(t, "c", history[0].Record.UserAnswer)
		assert.Equal(t, q.ID, history[0].Question.ID)
	})

	t.Run("RecordRequiresExistingQuestion", func(t *testing.T) {
		err := records.CreateRecord(ctx, &domain.Record{QuestionID: "does-not-exist", UserAnswer: "a"})
		assert.Error(t, err, "foreign key enforced")
	})
}

func TestSQLite_LongAnswerAndCategoryKept(t *testing.T) {
	db := setupSQLiteDB(t)
	questions := NewQuestionDatabaseAdapter(db)
	records := NewRecordDatabaseAdapter(db)
	ctx := context.Background()

	answer := strings.Repeat("a. 使用AES加密傳輸資料 ", 8)
	category := strings.Repeat("資訊安全管理", domain.MaxCategoryLength/6)
	q := domain.NewQuestion("Q", []string{"1", "2", "3", "4"}, answer, "E", category)
	require.NoError(t, questions.SaveQuestion(ctx, q))

	got, err := questions.GetQuestionByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, answer, got.Answer)
	assert.Equal(t, category, got.Category)

	listed, err := questions.ListQuestions(ctx, category)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	userAnswer := strings.Repeat("我不確定答案是哪一個", 10)
	require.NoError(t, records.CreateRecord(ctx, domain.NewRecord(got, userAnswer)))
	history, err := records.ListRecordsWithQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, userAnswer, history[0].Record.UserAnswer)
}

func TestSQLite_CreateRecordStampsAnsweredAt(t *testing.T) {
	db := setupSQLiteDB(t)
	questions := NewQuestionDatabaseAdapter(db)
	records := NewRecordDatabaseAdapter(db)
	ctx := context.Background()

	q := domain.NewQuestion("Q", []string{"1", "2", "3", "4"}, "b", "E", "技術")
	require.NoError(t, questions.SaveQuestion(ctx, q))

	r := domain.NewRecord(q, "b")
	require.True(t, r.AnsweredAt.IsZero())
	before := time.Now()
	require.NoError(t, records.CreateRecord(ctx, r))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, time.UTC, r.AnsweredAt.Location())
	assert.Equal(t, r.AnsweredAt, r.AnsweredAt.Truncate(time.Microsecond))
	assert.WithinDuration(t, before, r.AnsweredAt, time.Minute)

	history, err := records.ListRecordsWithQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, r.AnsweredAt.Equal(history[0].Record.AnsweredAt))
}
