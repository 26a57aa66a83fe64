package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/calendar"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/packets"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/render"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

type CalendarController struct {
	svc *calendar.Service
}

// CalendarModule mounts calendar loading and in-place editing.
func CalendarModule(svc *calendar.Service) api.Module {
	ctl := &CalendarController{svc: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/calendar", ctl.fetch)
		c.GET("/calendar", ctl.current)
		c.PUT("/calendar/cells/:row/:col", ctl.editCell)
		c.POST("/calendar/paste", ctl.paste)
		c.PUT("/calendar/title", ctl.editTitle)
	})
}

func calendarResponse(s *session.Session, t render.Table) (packets.CalendarResponse, *api.APIError) {
	html, err := render.HTML(t)
	if err != nil {
		log.Error().Err(err).Msg("failed to render calendar table")
		return packets.CalendarResponse{}, &api.APIError{Code: http.StatusInternalServerError, Message: "Tablo oluşturulamadı.", Err: err}
	}
	return packets.CalendarResponse{
		Title: t.Title,
		HTML:  string(html),
		Rows:  t.DataRows,
		Festival: packets.FestivalResponse{
			Date:          t.Festival.Date,
			PrayerTime:    t.Festival.PrayerTime,
			PrayerVisible: t.Festival.PrayerVisible,
		},
		Stylesheet: s.Fonts.Apply(),
		Page:       s.Doc.Snapshot(),
	}, nil
}

// POST /api/calendar
func (cc *CalendarController) fetch(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	var req packets.CalendarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err)
	}
	table, err := s.Fetch(ctx.Request.Context(), cc.svc, req.State, req.City)
	if err != nil {
		return nil, apiError(err)
	}
	res, apiErr := calendarResponse(s, table)
	if apiErr != nil {
		return nil, apiErr
	}
	return res, nil
}

// GET /api/calendar
func (cc *CalendarController) current(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	table, err := s.Table()
	if err != nil {
		return nil, apiError(err)
	}
	res, apiErr := calendarResponse(s, table)
	if apiErr != nil {
		return nil, apiErr
	}
	return res, nil
}

func intParam(ctx *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, ctx.Param(name))
	}
	return v, nil
}

// PUT /api/calendar/cells/:row/:col
func (cc *CalendarController) editCell(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	row, err := intParam(ctx, "row")
	if err != nil {
		return nil, badRequest(err)
	}
	col, err := intParam(ctx, "col")
	if err != nil {
		return nil, badRequest(err)
	}
	var req packets.EditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err)
	}
	clean, err := s.EditCell(row, col, req.HTML)
	if err != nil {
		return nil, apiError(err)
	}
	return packets.CellResponse{Row: row, Col: col, HTML: clean}, nil
}

// POST /api/calendar/paste
func (cc *CalendarController) paste(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	var req packets.PasteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err)
	}
	return packets.TextResponse{Text: render.PlainText(req.HTML)}, nil
}

// PUT /api/calendar/title
func (cc *CalendarController) editTitle(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	var req packets.EditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err)
	}
	title, err := s.EditTitle(req.HTML)
	if err != nil {
		return nil, apiError(err)
	}
	return packets.TextResponse{Text: title}, nil
}
