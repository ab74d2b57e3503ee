package service

import (
	"context"
	"time"

	"quiz-practice/internal/config"
	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"
	"quiz-practice/internal/metrics"
	"quiz-practice/internal/quizgen"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// generationService runs extraction, prompting, invocation, parsing,
// filtering and persistence for one request.
type generationService struct {
	source          domain.SourceLoader
	extractor       domain.TextExtractor
	invoker         domain.ModelInvoker
	questionRepo    domain.QuestionRepository
	saveConcurrency int
}

func NewGenerationService(
	source domain.SourceLoader,
	extractor domain.TextExtractor,
	invoker domain.ModelInvoker,
	questionRepo domain.QuestionRepository,
	cfg config.GenerationConfig,
) domain.GenerationService {
	concurrency := cfg.SaveConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &generationService{
		source:          source,
		extractor:       extractor,
		invoker:         invoker,
		questionRepo:    questionRepo,
		saveConcurrency: concurrency,
	}
}

// Generate aborts with an extraction or invocation error. Output that cannot
// be parsed, or that yields no valid candidates, is not an error: the result
// reports zero saved questions with the matching outcome.
func (s *generationService) Generate(ctx context.Context, category string, count int) (*domain.GenerationResult, error) {
	l := logger.Get().With(zap.String("category", category), zap.Int("requested", count))
	start := time.Now()
	defer func() { metrics.GenerationDuration.Observe(time.Since(start).Seconds()) }()

	data, err := s.source.Load(ctx)
	if err != nil {
		metrics.GenerationRuns.WithLabelValues(category, "extraction_error").Inc()
		l.Error("Failed to load reference document", zap.Error(err))
		return nil, err
	}
	referenceText, err := s.extractor.Extract(ctx, data)
	if err != nil {
		metrics.GenerationRuns.WithLabelValues(category, "extraction_error").Inc()
		l.Error("Failed to extract reference text", zap.Error(err))
		return nil, err
	}

	prompt := quizgen.BuildPrompt(category, count, referenceText)
	raw, err := s.invoker.Invoke(ctx, prompt)
	if err != nil {
		metrics.GenerationRuns.WithLabelValues(category, "invocation_error").Inc()
		return nil, err
	}

	result := &domain.GenerationResult{
		Category:  category,
		Requested: count,
		Questions: []*domain.Question{},
	}

	candidates, reason := quizgen.Parse(raw)
	if reason != quizgen.ParseOK {
		result.Outcome = domain.OutcomeNoParseableOutput
		metrics.GenerationRuns.WithLabelValues(category, string(result.Outcome)).Inc()
		l.Warn("Model output had no usable JSON array",
			zap.String("reason", string(reason)), zap.Int("responseLength", len(raw)))
		return result, nil
	}

	accepted, stats := quizgen.FilterCandidates(candidates)
	result.Considered = stats.Considered
	result.Accepted = stats.Accepted
	metrics.Candidates.WithLabelValues("accepted").Add(float64(stats.Accepted))
	metrics.Candidates.WithLabelValues("dropped").Add(float64(stats.Dropped))
	if stats.Dropped > 0 {
		l.Info("Dropped candidates without exactly four options",
			zap.Int("considered", stats.Considered), zap.Int("dropped", stats.Dropped))
	}
	if len(accepted) == 0 {
		result.Outcome = domain.OutcomeNoValidCandidates
		metrics.GenerationRuns.WithLabelValues(category, string(result.Outcome)).Inc()
		return result, nil
	}

	result.Questions = s.saveAll(ctx, category, accepted)
	result.Saved = len(result.Questions)
	result.Failed = len(accepted) - result.Saved
	result.Outcome = domain.OutcomeOK
	if result.Saved == 0 {
		result.Outcome = domain.OutcomePersistFailed
	}
	metrics.GenerationRuns.WithLabelValues(category, string(result.Outcome)).Inc()

	l.Info("Generation finished",
		zap.Int("considered", result.Considered),
		zap.Int("accepted", result.Accepted),
		zap.Int("saved", result.Saved),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// saveAll persists each candidate independently; one failure never undoes
// or blocks another. Saved questions keep the model's order.
func (s *generationService) saveAll(ctx context.Context, category string, accepted []domain.Candidate) []*domain.Question {
	l := logger.Get()
	slots := make([]*domain.Question, len(accepted))

	var g errgroup.Group
	g.SetLimit(s.saveConcurrency)
	for i, c := range accepted {
		i, c := i, c
		g.Go(func() error {
			q := quizgen.ToQuestion(c, category)
			if err := s.questionRepo.SaveQuestion(ctx, q); err != nil {
				metrics.QuestionsSaved.WithLabelValues(category, "failed").Inc()
				l.Error("Failed to save generated question", zap.Int("index", i), zap.Error(err))
				return nil
			}
			metrics.QuestionsSaved.WithLabelValues(category, "saved").Inc()
			slots[i] = q
			return nil
		})
	}
	_ = g.Wait()

	saved := make([]*domain.Question, 0, len(slots))
	for _, q := range slots {
		if q != nil {
			saved = append(saved, q)
		}
	}
	return saved
}
