package triage

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aegiscare/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/triage", h.Analyze, auth.RequireRole(auth.RolePatient))
}

type analyzeInput struct {
	Symptoms string `json:"symptoms"`
	Lang     string `json:"lang"`
}

func (h *Handler) Analyze(c echo.Context) error {
	var in analyzeInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.svc.Analyze(c.Request().Context(), in.Symptoms, in.Lang)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}
