package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// Assets opens theme background images by file name.
type Assets interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// loadBackground returns the theme background as PNG data, or nil when it
// cannot be loaded.
func loadBackground(ctx context.Context, assets Assets, theme model.Theme) []byte {
	if assets == nil {
		return nil
	}
	data, err := readBackground(ctx, assets, theme.Asset())
	if err != nil {
		log.Warn().Err(err).Str("theme", string(theme)).Msg("theme background unavailable, continuing without it")
		return nil
	}
	return data
}

func readBackground(ctx context.Context, assets Assets, name string) ([]byte, error) {
	rc, err := assets.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
