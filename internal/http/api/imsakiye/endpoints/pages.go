package endpoints

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/packets"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/page"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/render"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

// PageData is what the HTML templates render.
type PageData struct {
	Country    string
	Year       int
	Title      string
	Table      template.HTML
	Stylesheet template.CSS
	Fonts      fontsettings.Controls
	Themes     []packets.ThemeResponse
	Page       map[string]page.Element

	CityLoading packets.PickerResponse
}

type PagesController struct {
	country string
	year    int
}

// PagesModule mounts the selection and display pages.
func PagesModule(country string, year int) api.Module {
	ctl := &PagesController{country: country, year: year}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/", ctl.index)
		c.GET("/calendar", ctl.display)
	})
}

func (p *PagesController) data(s *session.Session) PageData {
	return PageData{
		Country:    p.country,
		Year:       p.year,
		Stylesheet: template.CSS(s.Fonts.Stylesheet()),
		Fonts:      s.Fonts.SyncUI(),
		Themes:     themeResponses(),
		Page:       s.Doc.Snapshot(),

		CityLoading: pickerResponse(location.Loading()),
	}
}

// GET /
func (p *PagesController) index(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	return api.Page{Template: "index.html", Data: p.data(s)}, nil
}

// GET /calendar
// Without a loaded calendar the selection page is shown instead.
func (p *PagesController) display(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	table, err := s.Table()
	if err != nil {
		return p.index(ctx, s)
	}
	html, err := render.HTML(table)
	if err != nil {
		log.Error().Err(err).Msg("failed to render calendar page")
		return nil, apiError(err)
	}
	data := p.data(s)
	data.Title = table.Title
	data.Table = html
	return api.Page{Template: "calendar.html", Data: data}, nil
}
