package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner-service/internal/pkg/utils"
	"github.com/trip-planner-service/internal/usecase"
	"github.com/trip-planner-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// BudgetHandler - обработчик бюджетов и расходов поездки
type BudgetHandler struct {
	budgetUC *usecase.BudgetUseCase
	logger   *zap.Logger
}

// NewBudgetHandler - создание нового BudgetHandler
func NewBudgetHandler(budgetUC *usecase.BudgetUseCase, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetUC: budgetUC,
		logger:   logger,
	}
}

// CreateBudget - создание или замена бюджета поездки
func (h *BudgetHandler) CreateBudget(c *fiber.Ctx) error {
	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	budget, err := h.budgetUC.CreateBudget(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, budget, nil)
}

// GetBudgetStatus - снимок бюджета поездки с аналитикой
func (h *BudgetHandler) GetBudgetStatus(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")

	status, err := h.budgetUC.GetBudgetStatus(c.Context(), tripID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}

// AddExpense - добавление расхода с пересчётом бюджета
func (h *BudgetHandler) AddExpense(c *fiber.Ctx) error {
	var req dto.AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	status, err := h.budgetUC.AddExpense(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}

// DeleteExpense - удаление расхода с пересчётом бюджета
func (h *BudgetHandler) DeleteExpense(c *fiber.Ctx) error {
	expenseID := c.Params("id")

	status, err := h.budgetUC.DeleteExpense(c.Context(), expenseID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}

// ListExpenses - расходы поездки, новые сверху
func (h *BudgetHandler) ListExpenses(c *fiber.Ctx) error {
	tripID := c.Params("trip_id")

	result, err := h.budgetUC.ListExpenses(c.Context(), tripID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
