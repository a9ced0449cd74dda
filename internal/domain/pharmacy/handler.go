package pharmacy

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aegiscare/clinic/internal/platform/auth"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/pharmacy/quotes", h.Quotes, auth.RequireRole(auth.RolePatient))
}

func (h *Handler) Quotes(c echo.Context) error {
	set, err := h.engine.Quotes(c.QueryParam("medicine"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, set)
}
