package endpoints

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

// ExportFiles reads back stored exports by key.
type ExportFiles interface {
	OpenExport(ctx context.Context, key string) (io.ReadCloser, error)
}

type DownloadsController struct {
	files ExportFiles
}

// DownloadsModule serves locally stored exports to the session that made
// them, under the file name the export was created with.
func DownloadsModule(files ExportFiles) api.Module {
	ctl := &DownloadsController{files: files}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/exports/:key", ctl.download)
	})
}

// GET /exports/:key
func (d *DownloadsController) download(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	key := ctx.Param("key")
	name, err := s.ExportFile(key)
	if err != nil {
		return nil, apiError(err)
	}
	rc, err := d.files.OpenExport(ctx.Request.Context(), key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored export unavailable")
		return nil, apiError(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apiError(err)
	}
	return api.File{Name: name, ContentType: pdfContentType, Data: data}, nil
}
