// Package media provides playback backends implementing the player.Handle
// contract.
package media

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"playdeck/internal/app/player"
)

// NewHandle creates a playback backend from configuration.
func NewHandle(backend string, settings map[string]any) (player.Handle, error) {
	zlog.Debug().Msgf("media: creating backend: type=%s settings=%+v", backend, settings)

	switch backend {
	case "beep", "":
		cfg, err := decodeBeepSettings(settings)
		if err != nil {
			return nil, err
		}
		return newBeepHandle(cfg)

	default:
		return nil, errors.Newf("unsupported media backend: %s", backend)
	}
}

// BeepSettings configures the beep backend.
type BeepSettings struct {
	SampleRate       int `mapstructure:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs         int `mapstructure:"buffer_ms" default:"100" validate:"gte=10,lte=2000"`
	UpdateIntervalMs int `mapstructure:"update_interval_ms" default:"250" validate:"gte=50,lte=5000"`
}

func decodeBeepSettings(settings map[string]any) (BeepSettings, error) {
	var cfg BeepSettings
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "validation failed")
	}
	return cfg, nil
}
