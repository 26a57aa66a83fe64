package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/calendar"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/config"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/gateway"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/endpoints"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/logging"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/notify"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

const (
	logoTimeout   = 30 * time.Second
	sweepInterval = 10 * time.Minute
)

func main() {
	cfg := LoadEnvironment()
	logging.Setup(cfg.Development(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := InitStorage(cfg)
	settings := InitSettingsStore(ctx, cfg)

	upstream := gateway.New(cfg.APIBase, upstreamClient())

	rasterizer, err := export.NewRasterizer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load export fonts")
	}

	notifier := initNotifier(cfg)

	env := &export.Env{
		Capturer:    rasterizer,
		Assets:      store,
		Exports:     store,
		Notifier:    notifier,
		Year:        cfg.CalendarYear,
		Decorations: loadDecorations(ctx, cfg.HeaderLogoURL),
	}

	sessions := session.NewManager(settings, env, cfg.SessionTTL)
	go sessions.Run(ctx, sweepInterval)

	var files endpoints.ExportFiles
	if ls := exportFiles(store); ls != nil {
		files = ls
		go sweepExports(ctx, ls, cfg.SessionTTL, sweepInterval)
	}

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(func(c *gin.Context) string {
		if s, ok := session.FromContext(c); ok {
			return s.ID
		}
		return ""
	}))

	RegisterRoutes(r, cfg, Services{
		Flow:     location.New(upstream, cfg.CountryCode),
		Calendar: calendar.New(upstream, cfg.CountryCode),
		Sessions: sessions,
		Exports:  files,
	}, LoadTemplates())

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if p, ok := notifier.(*notify.Publisher); ok {
		p.Close()
	}
}

func initNotifier(cfg *config.Config) export.Notifier {
	if cfg.MQTTBrokerURL == "" {
		return notify.Noop{}
	}
	p, err := notify.Connect(cfg.MQTTBrokerURL, "imsakiye-"+uuid.NewString(), cfg.MQTTTopic)
	if err != nil {
		log.Warn().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt unavailable, export events disabled")
		return notify.Noop{}
	}
	return p
}

// loadDecorations fetches the optional header logo. It is cross-origin, so
// a capture that draws it comes out tainted and is retried without it.
func loadDecorations(ctx context.Context, logoURL string) []export.Decoration {
	if logoURL == "" {
		return nil
	}
	img, err := fetchImage(ctx, logoURL)
	if err != nil {
		log.Warn().Err(err).Str("url", logoURL).Msg("header logo skipped")
		return nil
	}
	return []export.Decoration{{Name: "header-logo", Image: img, CrossOrigin: true}}
}

// upstreamClient has no overall timeout; calendar calls are bounded by the
// request context only.
func upstreamClient() *http.Client {
	return &http.Client{}
}

func fetchImage(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, logoTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	img, _, err := image.Decode(res.Body)
	return img, err
}
