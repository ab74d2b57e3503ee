package handler

import (
	"strings"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/dto"
	"quiz-practice/internal/service"
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SchedulerController is the part of *service.Scheduler the API drives.
type SchedulerController interface {
	Start(category string) error
	Stop()
	Status() service.SchedulerStatus
}

type SchedulerHandler struct {
	scheduler       SchedulerController
	validator       *validation.Validator
	defaultCategory string
}

func NewSchedulerHandler(scheduler SchedulerController, validator *validation.Validator, defaultCategory string) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler:       scheduler,
		validator:       validator,
		defaultCategory: defaultCategory,
	}
}

// Start godoc
// @Summary Start periodic generation
// @Tags scheduler
// @Accept json
// @Produce json
// @Param request body dto.SchedulerStartRequest false "Category to generate"
// @Success 200 {object} dto.SchedulerStatusResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /scheduler/start [post]
func (h *SchedulerHandler) Start(c *fiber.Ctx) error {
	var req dto.SchedulerStartRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = h.defaultCategory
	}
	if errs := h.validator.ValidateCategory(category); len(errs) > 0 {
		return errs
	}

	if err := h.scheduler.Start(category); err != nil {
		return err
	}
	return c.JSON(toSchedulerStatusResponse(h.scheduler.Status()))
}

// Stop godoc
// @Summary Stop periodic generation
// @Tags scheduler
// @Produce json
// @Success 200 {object} dto.SchedulerStatusResponse
// @Router /scheduler/stop [post]
func (h *SchedulerHandler) Stop(c *fiber.Ctx) error {
	h.scheduler.Stop()
	return c.JSON(toSchedulerStatusResponse(h.scheduler.Status()))
}

// Status godoc
// @Summary Scheduler status
// @Tags scheduler
// @Produce json
// @Success 200 {object} dto.SchedulerStatusResponse
// @Router /scheduler [get]
func (h *SchedulerHandler) Status(c *fiber.Ctx) error {
	return c.JSON(toSchedulerStatusResponse(h.scheduler.Status()))
}
