package perkembangan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/posyandu/posyandu/internal/platform/api"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/perkembangan/anak/:id", h.ListByAnak)
	g.POST("/perkembangan", h.Record)
	g.PUT("/perkembangan/:id", h.Revise)
	g.DELETE("/perkembangan/:id", h.Delete)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// recordsOrEmpty keeps an empty list marshaling as [] instead of null.
func recordsOrEmpty(items []*Perkembangan) []*Perkembangan {
	if items == nil {
		return []*Perkembangan{}
	}
	return items
}

func (h *Handler) ListByAnak(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	recs, err := h.svc.ListByAnak(c.Request().Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("anak_id", id).Msg("list growth data")
		return api.Error(c, http.StatusInternalServerError, "Failed to get growth data")
	}
	return api.Success(c, api.Envelope{
		"perkembangan": recordsOrEmpty(recs.Perkembangan),
		"child_info": api.Envelope{
			"id":            recs.AnakID,
			"records_count": recs.RecordsCount,
		},
	})
}

func (h *Handler) Record(c echo.Context) error {
	var in WriteInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.Record(c.Request().Context(), in)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return api.ValidationFailed(c, ve.Fields)
		}
		h.logger.Error().Err(err).Msg("save growth data")
		return api.Error(c, http.StatusInternalServerError, "Failed to save growth data")
	}
	return api.Success(c, api.Envelope{
		"message":      "Growth data saved successfully",
		"perkembangan": created,
	})
}

func (h *Handler) Revise(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in WriteInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	newRec, oldRec, err := h.svc.Revise(c.Request().Context(), id, in)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return api.ValidationFailed(c, ve.Fields)
		case errors.Is(err, ErrNotFound):
			return api.Error(c, http.StatusNotFound, "Growth data not found")
		case errors.Is(err, ErrConflict):
			return api.Error(c, http.StatusConflict, "Growth data was already updated")
		default:
			h.logger.Error().Err(err).Int64("id", id).Msg("update growth data")
			return api.Error(c, http.StatusInternalServerError, "Failed to update growth data")
		}
	}
	return api.Success(c, api.Envelope{
		"message":      "Growth data updated successfully",
		"perkembangan": newRec,
		"old_record":   oldRec,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, http.StatusNotFound, "Growth data not found")
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("delete growth data")
		return api.Error(c, http.StatusInternalServerError, "Failed to delete growth data")
	}
	return api.Success(c, api.Envelope{
		"message": "Growth data deleted successfully",
	})
}
