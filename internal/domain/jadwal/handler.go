package jadwal

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/posyandu/posyandu/internal/domain/anak"
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
	g.GET("/jadwal", h.Index)
	g.GET("/jadwal/upcoming", h.Upcoming)
	g.GET("/jadwal/upcoming/anak/:id", h.UpcomingForChild)
	g.GET("/jadwal/imunisasi/anak/:id", h.ImunisasiForChild)
	g.GET("/jadwal/vitamin/anak/:id", h.VitaminForChild)
	g.GET("/jadwal/imunisasi/age-ranges", h.ImunisasiAgeRanges)
	g.GET("/jadwal/vitamin/age-ranges", h.VitaminAgeRanges)
}

// jadwalOrEmpty keeps an empty result marshaling as [] instead of null.
func jadwalOrEmpty(items []*Jadwal) []*Jadwal {
	if items == nil {
		return []*Jadwal{}
	}
	return items
}

func anakID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}
	return id, nil
}

func (h *Handler) Index(c echo.Context) error {
	items, err := h.svc.AllHistorical(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list schedules")
		return api.Error(c, http.StatusInternalServerError, "Failed to get schedules")
	}
	return api.Success(c, api.Envelope{"data": jadwalOrEmpty(items)})
}

func (h *Handler) Upcoming(c echo.Context) error {
	items, err := h.svc.AllUpcoming(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list upcoming schedules")
		return api.Error(c, http.StatusInternalServerError, "Failed to get upcoming schedules")
	}
	return api.Success(c, api.Envelope{"data": jadwalOrEmpty(items)})
}

func (h *Handler) UpcomingForChild(c echo.Context) error {
	id, err := anakID(c)
	if err != nil {
		return err
	}
	sched, err := h.svc.UpcomingForChild(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, anak.ErrNotFound) {
			return api.Error(c, http.StatusNotFound, "Child not found")
		}
		h.logger.Error().Err(err).Int64("anak_id", id).Msg("age-appropriate schedules")
		return api.Error(c, http.StatusInternalServerError, "Failed to get age-appropriate schedules")
	}
	return api.Success(c, api.Envelope{
		"data":        jadwalOrEmpty(sched.Jadwal),
		"child_info":  sched.Child,
		"filter_info": sched.Filter,
	})
}

func (h *Handler) ImunisasiForChild(c echo.Context) error {
	id, err := anakID(c)
	if err != nil {
		return err
	}
	sched, err := h.svc.UpcomingImunisasiForChild(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, anak.ErrNotFound) {
			return api.Error(c, http.StatusNotFound, "Child not found")
		}
		h.logger.Error().Err(err).Int64("anak_id", id).Msg("age-appropriate imunisasi")
		return api.Error(c, http.StatusInternalServerError, "Failed to get age-appropriate imunisasi")
	}
	return api.Success(c, api.Envelope{
		"data":        jadwalOrEmpty(sched.Jadwal),
		"child_info":  sched.Child,
		"filter_info": sched.Filter,
	})
}

func (h *Handler) VitaminForChild(c echo.Context) error {
	id, err := anakID(c)
	if err != nil {
		return err
	}
	sched, err := h.svc.UpcomingVitaminForChild(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, anak.ErrNotFound) {
			return api.Error(c, http.StatusNotFound, "Child not found")
		}
		h.logger.Error().Err(err).Int64("anak_id", id).Msg("age-appropriate vitamin")
		return api.Error(c, http.StatusInternalServerError, "Failed to get age-appropriate vitamin")
	}
	return api.Success(c, api.Envelope{
		"data":        jadwalOrEmpty(sched.Jadwal),
		"child_info":  sched.Child,
		"filter_info": sched.Filter,
	})
}

func (h *Handler) ImunisasiAgeRanges(c echo.Context) error {
	return api.Success(c, api.Envelope{"data": ImunisasiAgeRanges()})
}

func (h *Handler) VitaminAgeRanges(c echo.Context) error {
	return api.Success(c, api.Envelope{"data": VitaminAgeRanges()})
}
