package endpoints

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/packets"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportController struct {
	year int
}

// ExportModule mounts theme listing and document exports.
func ExportModule(year int) api.Module {
	ctl := &ExportController{year: year}
	return api.ModuleFunc(func(c *api.Controller) {
		c.Public(http.MethodGet, "/themes", listThemes)
		c.POST("/export/pdf", ctl.pdf)
		c.GET("/export/xlsx", ctl.xlsx)
	})
}

func themeResponses() []packets.ThemeResponse {
	out := make([]packets.ThemeResponse, 0, len(model.Themes))
	for i, t := range model.Themes {
		out = append(out, packets.ThemeResponse{
			ID:        string(t),
			Name:      fmt.Sprintf("Tema %d", i+1),
			BodyClass: t.BodyClass(),
			Asset:     t.Asset(),
		})
	}
	return out
}

// GET /api/themes
func listThemes(ctx *gin.Context) (any, *api.APIError) {
	return themeResponses(), nil
}

// POST /api/export/pdf
// A stored document is answered with its URL; otherwise the document itself
// is sent as an attachment.
func (e *ExportController) pdf(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	var req packets.ExportRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return nil, badRequest(err)
		}
	}
	res, err := s.ExportPDF(ctx.Request.Context(), model.ParseTheme(req.Theme))
	if err != nil {
		return nil, apiError(err)
	}
	if res.Data != nil {
		return api.File{Name: res.FileName, ContentType: pdfContentType, Data: res.Data}, nil
	}
	return packets.ExportResponse{
		ID:       res.ID,
		FileName: res.FileName,
		URL:      res.URL,
		Size:     res.Size,
		Page:     s.Doc.Snapshot(),
	}, nil
}

// GET /api/export/xlsx
func (e *ExportController) xlsx(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	table, err := s.Table()
	if err != nil {
		return nil, apiError(err)
	}
	sel, _ := s.Selection()
	data, err := export.XLSX(table)
	if err != nil {
		log.Error().Err(err).Str("city", sel.City).Msg("xlsx export failed")
		return nil, apiError(err)
	}
	return api.File{Name: export.FileName(sel, e.year, "xlsx"), ContentType: xlsxContentType, Data: data}, nil
}
