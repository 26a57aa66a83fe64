package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/packets"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

// FontsModule mounts the font settings panel.
func FontsModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/fonts", getFonts)
		c.POST("/fonts/change", changeFont)
		c.POST("/fonts/save", saveFonts)
		c.POST("/fonts/reset", resetFonts)
		c.GET("/fonts/stylesheet.css", stylesheet)
	})
}

// GET /api/fonts
func getFonts(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	return packets.FontsResponse{Controls: s.Fonts.SyncUI(), Stylesheet: s.Fonts.Stylesheet()}, nil
}

// POST /api/fonts/change
func changeFont(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	var req packets.FontChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err)
	}
	if err := s.Fonts.HandleSettingChange(req.Scope, req.Property, req.Value); err != nil {
		return nil, apiError(err)
	}
	return packets.FontsResponse{Controls: s.Fonts.Controls(), Stylesheet: s.Fonts.Stylesheet()}, nil
}

// POST /api/fonts/save
// Storage failures are logged by the model and never shown as an error.
func saveFonts(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	err := s.Fonts.SaveToStorage(ctx.Request.Context())
	return packets.SaveResponse{Saved: err == nil}, nil
}

// POST /api/fonts/reset
// The live settings are reset even when persisting them fails.
func resetFonts(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	_ = s.Fonts.Reset(ctx.Request.Context())
	return packets.FontsResponse{Controls: s.Fonts.Controls(), Stylesheet: s.Fonts.Stylesheet()}, nil
}

// GET /api/fonts/stylesheet.css
func stylesheet(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	return api.Text{ContentType: "text/css; charset=utf-8", Body: s.Fonts.Stylesheet()}, nil
}
