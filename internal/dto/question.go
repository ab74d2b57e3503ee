package dto

import "time"

// GenerateRequest asks for a batch of generated questions.
// @Description Request body for question generation
type GenerateRequest struct {
	Category string `json:"category" example:"技術"`
	Count    *int   `json:"count,omitempty" example:"15"`
}

// GenerateResponse reports how many questions were saved.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// QuestionResponse is a question as shown to the practice UI.
// @Description Practice question
type QuestionResponse struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Options     []string  `json:"options"`
	Answer      string    `json:"answer"`
	Explanation string    `json:"explanation"`
	Category    string    `json:"category"`
	Answered    bool      `json:"answered"`
	CreatedAt   time.Time `json:"createdAt"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// CreateQuestionRequest is a manually written question.
type CreateQuestionRequest struct {
	Content     string   `json:"content"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer" example:"a"`
	Explanation string   `json:"explanation"`
	Category    string   `json:"category" example:"管理"`
}

type CreateQuestionResponse struct {
	Question QuestionResponse `json:"question"`
}

// RecordAnswerRequest submits one answer.
// @Description Request body for answering a question
type RecordAnswerRequest struct {
	QuestionID string `json:"questionId"`
	UserAnswer string `json:"userAnswer" example:"b"`
}

type RecordResponse struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId"`
	UserAnswer string    `json:"userAnswer"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

type RecordAnswerResponse struct {
	Record    RecordResponse `json:"record"`
	IsCorrect bool           `json:"isCorrect"`
}

// HistoryRecordResponse is a record with the question it answers.
type HistoryRecordResponse struct {
	RecordResponse
	Question QuestionResponse `json:"question"`
}

type RecordListResponse struct {
	Records []HistoryRecordResponse `json:"records"`
}

// SchedulerStartRequest starts periodic generation for a category.
type SchedulerStartRequest struct {
	Category string `json:"category" example:"技術"`
}

// SchedulerStatusResponse describes the periodic generator.
type SchedulerStatusResponse struct {
	Running         bool       `json:"running"`
	Category        string     `json:"category,omitempty"`
	Count           int        `json:"count"`
	IntervalSeconds int        `json:"intervalSeconds"`
	Runs            int        `json:"runs"`
	LastRunAt       *time.Time `json:"lastRunAt,omitempty"`
	LastOutcome     string     `json:"lastOutcome,omitempty"`
	LastSaved       int        `json:"lastSaved"`
	LastError       string     `json:"lastError,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
