package sources

import (
	"fmt"

	"github.com/haberhub/scraper/internal/config"
	"github.com/haberhub/scraper/internal/logger"
)

// Profiles returns every publisher profile in the fixed run order.
// Determinism here gives deterministic adapter ordering per run.
func Profiles() []Profile {
	return []Profile{
		AAProfile(),
		TRTHaberProfile(),
		MynetProfile(),
	}
}

// BuildAdapters constructs one adapter per publisher profile in the fixed
// run order.
func BuildAdapters(cfg config.ScraperConfig, log logger.Interface) ([]*Adapter, error) {
	profiles := Profiles()
	adapters := make([]*Adapter, 0, len(profiles))

	for _, profile := range profiles {
		adapter, err := New(profile, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to build adapter %s: %w", profile.Name, err)
		}
		adapters = append(adapters, adapter)
	}

	return adapters, nil
}
