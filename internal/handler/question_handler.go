package handler

import (
	"quiz-practice/internal/domain"
	"quiz-practice/internal/dto"
	"quiz-practice/internal/middleware"
	"quiz-practice/internal/service"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question browsing and manual entry.
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

func NewQuestionHandler(service service.QuestionService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validator,
	}
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns stored questions newest first, optionally filtered by category
// @Tags questions
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	category, _ := c.Locals(middleware.LocalsCategory).(string)

	questions, err := h.service.ListQuestions(c.UserContext(), category)
	if err != nil {
		return err
	}

	resp := dto.QuestionListResponse{Questions: make([]dto.QuestionResponse, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(q))
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Stores a manually written question with exactly four options
// @Tags questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.CreateQuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	question := domain.NewQuestion(req.Content, req.Options, req.Answer, req.Explanation, req.Category)
	if errs := h.validator.ValidateQuestion(question); len(errs) > 0 {
		return errs
	}

	saved, err := h.service.CreateQuestion(c.UserContext(), question)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateQuestionResponse{Question: toQuestionResponse(saved)})
}
