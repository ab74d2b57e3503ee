package handler

import (
	"quiz-practice/internal/domain"
	"quiz-practice/internal/dto"
	"quiz-practice/internal/service"
)

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	return dto.QuestionResponse{
		ID:          q.ID,
		Content:     q.Content,
		Options:     options,
		Answer:      q.Answer,
		Explanation: q.Explanation,
		Category:    q.Category,
		Answered:    q.Answered,
		CreatedAt:   q.CreatedAt,
	}
}

func toRecordResponse(r *domain.Record) dto.RecordResponse {
	return dto.RecordResponse{
		ID:         r.ID,
		QuestionID: r.QuestionID,
		UserAnswer: r.UserAnswer,
		IsCorrect:  r.IsCorrect,
		AnsweredAt: r.AnsweredAt,
	}
}

func toSchedulerStatusResponse(s service.SchedulerStatus) dto.SchedulerStatusResponse {
	resp := dto.SchedulerStatusResponse{
		Running:         s.Running,
		Category:        s.Category,
		Count:           s.Count,
		IntervalSeconds: int(s.Interval.Seconds()),
		Runs:            s.Runs,
		LastOutcome:     string(s.LastOutcome),
		LastSaved:       s.LastSaved,
		LastError:       s.LastError,
	}
	if !s.LastRunAt.IsZero() {
		lastRunAt := s.LastRunAt
		resp.LastRunAt = &lastRunAt
	}
	return resp
}
