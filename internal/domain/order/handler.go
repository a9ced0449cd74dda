package order

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/aegiscare/clinic/internal/domain/prescription"
	"github.com/aegiscare/clinic/internal/platform/auth"
	"github.com/aegiscare/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", h.PlaceOrder, auth.RequireRole(auth.RolePatient))
	g.GET("/orders", h.ListMine, auth.RequireRole(auth.RolePatient))
	g.GET("/orders/all", h.ListAll, auth.RequireRole(auth.RoleDoctor))
	g.PUT("/orders/:id/status", h.UpdateStatus, auth.RequireRole(auth.RoleDoctor))
}

func (h *Handler) PlaceOrder(c echo.Context) error {
	var in struct {
		PrescriptionID uuid.UUID `json:"prescription_id"`
		Vendor         string    `json:"vendor"`
		FinalPrice     float64   `json:"final_price"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	o, err := h.svc.PlaceOrder(ctx, auth.UserIDFromContext(ctx), in.PrescriptionID, in.Vendor, in.FinalPrice)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, prescription.ErrUnavailable):
			return echo.NewHTTPError(http.StatusConflict, "prescription unavailable or already ordered")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	o, err := h.svc.UpdateStatus(c.Request().Context(), id, Status(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(ctx, auth.UserIDFromContext(ctx), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListAll(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAll(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
