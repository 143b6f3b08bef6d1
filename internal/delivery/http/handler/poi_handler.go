package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner-service/internal/pkg/utils"
	"github.com/trip-planner-service/internal/usecase"
	"go.uber.org/zap"
)

// POIHandler - обработчик каталога точек интереса
type POIHandler struct {
	poiUC  *usecase.POIUseCase
	logger *zap.Logger
}

// NewPOIHandler - создание нового POIHandler
func NewPOIHandler(poiUC *usecase.POIUseCase, logger *zap.Logger) *POIHandler {
	return &POIHandler{
		poiUC:  poiUC,
		logger: logger,
	}
}

// List - список точек интереса, опционально по городу
func (h *POIHandler) List(c *fiber.Ctx) error {
	city := c.Query("city")
	limit := c.QueryInt("limit", 50)

	result, err := h.poiUC.ListByCity(c.Context(), city, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetByID - одна точка интереса по идентификатору
func (h *POIHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	poi, err := h.poiUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, poi, nil)
}
