package handler

import (
	"strings"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/dto"
	"quiz-practice/internal/service"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RecordHandler handles answer submission and history.
type RecordHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

func NewRecordHandler(service service.QuestionService, validator *validation.Validator) *RecordHandler {
	return &RecordHandler{
		service:   service,
		validator: validator,
	}
}

// RecordAnswer godoc
// @Summary Answer a question
// @Description Grades the answer, appends a record and marks the question answered
// @Tags records
// @Accept json
// @Produce json
// @Param answer body dto.RecordAnswerRequest true "Answer"
// @Success 200 {object} dto.RecordAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /records [post]
func (h *RecordHandler) RecordAnswer(c *fiber.Ctx) error {
	var req dto.RecordAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	req.QuestionID = strings.TrimSpace(req.QuestionID)

	if errs := h.validator.ValidateAnswerRequest(req.QuestionID, req.UserAnswer); len(errs) > 0 {
		return errs
	}

	record, err := h.service.RecordAnswer(c.UserContext(), req.QuestionID, req.UserAnswer)
	if err != nil {
		return err
	}
	return c.JSON(dto.RecordAnswerResponse{
		Record:    toRecordResponse(record),
		IsCorrect: record.IsCorrect,
	})
}

// ListRecords godoc
// @Summary Answer history
// @Description Returns every answer record with its question, newest first
// @Tags records
// @Produce json
// @Success 200 {object} dto.RecordListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /records [get]
func (h *RecordHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.service.ListRecords(c.UserContext())
	if err != nil {
		return err
	}

	resp := dto.RecordListResponse{Records: make([]dto.HistoryRecordResponse, 0, len(records))}
	for _, r := range records {
		resp.Records = append(resp.Records, dto.HistoryRecordResponse{
			RecordResponse: toRecordResponse(r.Record),
			Question:       toQuestionResponse(r.Question),
		})
	}
	return c.JSON(resp)
}
