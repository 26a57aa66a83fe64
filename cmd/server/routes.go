package main

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/calendar"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/config"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/endpoints"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
	"github.com/Nixie-Tech-LLC/imsakiye/web"
)

// Services bundles what the route modules depend on.
type Services struct {
	Flow     *location.Flow
	Calendar *calendar.Service
	Sessions *session.Manager
	Exports  endpoints.ExportFiles // nil when exports are served by the CDN
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc Services, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": svc.Sessions.Len()})
	})
	r.StaticFS("/static", http.FS(web.Static()))

	secure := !cfg.Development()

	pages := []api.Module{endpoints.PagesModule(cfg.CountryCode, cfg.CalendarYear)}
	if svc.Exports != nil {
		pages = append(pages, endpoints.DownloadsModule(svc.Exports))
	}
	api.MountGroup(r, api.GroupConfig{
		Prefix:       "",
		Sessions:     svc.Sessions,
		SecretKey:    cfg.SessionSecret,
		SecureCookie: secure,
	}, pages...)

	api.MountGroup(r, api.GroupConfig{
		Prefix:       "/api",
		Sessions:     svc.Sessions,
		SecretKey:    cfg.SessionSecret,
		SecureCookie: secure,
		Middleware: []gin.HandlerFunc{cors.New(cors.Config{
			AllowOriginFunc: func(origin string) bool { return true },
			AllowMethods: []string{
				"GET",
				"POST",
				"PUT",
				"OPTIONS",
				"HEAD",
			},
			AllowHeaders: []string{
				"Origin",
				"Content-Type",
				"Accept",
				"X-Request-ID",
			},
			ExposeHeaders: []string{
				"Content-Length",
				"Content-Disposition",
				"X-Request-ID",
			},
			AllowCredentials: true,
		})},
	},
		endpoints.LocationModule(svc.Flow),
		endpoints.CalendarModule(svc.Calendar),
		endpoints.FontsModule(),
		endpoints.ExportModule(cfg.CalendarYear),
	)
}
