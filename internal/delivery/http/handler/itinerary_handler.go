package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner-service/internal/pkg/utils"
	"github.com/trip-planner-service/internal/usecase"
	"github.com/trip-planner-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ItineraryHandler - обработчик генерации и чтения маршрутов
type ItineraryHandler struct {
	itineraryUC *usecase.ItineraryUseCase
	logger      *zap.Logger
}

// NewItineraryHandler - создание нового ItineraryHandler
func NewItineraryHandler(itineraryUC *usecase.ItineraryUseCase, logger *zap.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryUC: itineraryUC,
		logger:      logger,
	}
}

// Generate - генерация маршрута по ограничениям пользователя
func (h *ItineraryHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateItineraryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	itinerary, err := h.itineraryUC.Generate(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, itinerary, &utils.Meta{
		Total: itinerary.TotalActivities(),
	})
}

// GetByID - маршрут по идентификатору
func (h *ItineraryHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	itinerary, err := h.itineraryUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, itinerary, nil)
}

// ListByUser - маршруты пользователя, новые сверху
func (h *ItineraryHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	limit := c.QueryInt("limit", 20)

	itineraries, err := h.itineraryUC.ListByUser(c.Context(), userID, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"itineraries": itineraries,
	}, &utils.Meta{
		Total: len(itineraries),
	})
}
