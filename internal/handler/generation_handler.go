package handler

import (
	"fmt"
	"strings"

	"quiz-practice/internal/config"
	"quiz-practice/internal/domain"
	"quiz-practice/internal/dto"
	"quiz-practice/internal/logger"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerationHandler serves on-demand question generation.
type GenerationHandler struct {
	service   domain.GenerationService
	validator *validation.Validator
	cfg       config.GenerationConfig
}

func NewGenerationHandler(service domain.GenerationService, validator *validation.Validator, cfg config.GenerationConfig) *GenerationHandler {
	return &GenerationHandler{
		service:   service,
		validator: validator,
		cfg:       cfg,
	}
}

// Generate godoc
// @Summary Generate questions
// @Description Generates multiple-choice questions for a category from the reference document
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation request"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = h.defaultCategory()
	}
	count := h.cfg.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}

	if errs := h.validator.ValidateGenerateRequest(category, count); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Generate(c.UserContext(), category, count)
	if err != nil {
		return err
	}
	if result.Saved == 0 {
		logger.Get().Warn("Generation produced no questions",
			zap.String("category", category),
			zap.String("outcome", string(result.Outcome)),
			zap.Int("considered", result.Considered),
			zap.Int("accepted", result.Accepted),
		)
		return domain.NewNoQuestionsError(category)
	}

	return c.JSON(dto.GenerateResponse{
		Success: true,
		Message: fmt.Sprintf("成功生成 %d 道'%s'類型的題目", result.Saved, category),
		Count:   result.Saved,
	})
}

func (h *GenerationHandler) defaultCategory() string {
	if len(h.cfg.Categories) > 0 {
		return h.cfg.Categories[0]
	}
	return "技術"
}
