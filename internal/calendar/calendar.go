// Package calendar fetches and assembles the imsakiye of one city.
package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
)

// ErrNoData is returned when the API answers with an empty calendar.
var ErrNoData = errors.New("Veri bulunamadı.")

// Source is the subset of the remote gateway the service needs.
type Source interface {
	Calendar(ctx context.Context, country, state, city string) ([]model.CalendarRow, error)
	FestivalPrayer(ctx context.Context, country, state, city string) (model.FestivalPrayer, error)
}

type Service struct {
	src     Source
	country string
}

func New(src Source, country string) *Service {
	return &Service{src: src, country: country}
}

// Fetch loads the calendar rows (required) and the festival prayer time
// (optional) and assembles a fresh Selection. A failing festival call only
// leaves the field absent.
func (s *Service) Fetch(ctx context.Context, catalog model.Catalog, stateCode, city string) (model.Selection, error) {
	rows, err := s.src.Calendar(ctx, s.country, stateCode, city)
	if err != nil {
		return model.Selection{}, fmt.Errorf("Hata: %w", err)
	}
	if len(rows) == 0 {
		return model.Selection{}, fmt.Errorf("Hata: %w", ErrNoData)
	}

	return model.Selection{
		Country:        catalog.CountryName(s.country),
		State:          catalog.StateName(s.country, stateCode),
		StateCode:      stateCode,
		City:           city,
		Rows:           rows,
		FestivalPrayer: s.festivalPrayer(ctx, stateCode, city),
	}, nil
}

func (s *Service) festivalPrayer(ctx context.Context, stateCode, city string) model.Optional[string] {
	fp, err := s.src.FestivalPrayer(ctx, s.country, stateCode, city)
	if err != nil {
		log.Warn().Err(err).Str("state", stateCode).Str("city", city).Msg("festival prayer time unavailable")
		return model.None[string]()
	}
	if fp.Time == "" {
		return model.None[string]()
	}
	return model.Some(fp.Time)
}
