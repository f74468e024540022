package main

import (
	"fmt"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/blink/config"
	"github.com/robmorgan/blink/provider"
	"github.com/robmorgan/blink/registry"
	"github.com/robmorgan/blink/utils"
	"github.com/robmorgan/blink/visual"
	"github.com/sirupsen/logrus"
)

// indicator is one LED on the wall.
type indicator struct {
	name string
	row  int
	col  int

	// nil for steady indicators
	provider *provider.Provider
	brush    *visual.Brush
	release  func()

	on bool
}

// registerProfiles creates one provider per profile and adds it to the registry.
func registerProfiles(reg *registry.Registry, profiles map[string]config.ProviderConfig, newProvider func(config.ProviderConfig) (*provider.Provider, error)) error {
	for name, cfg := range profiles {
		p, err := newProvider(cfg)
		if err != nil {
			return errors.WithStackTrace(fmt.Errorf("profile %q: %w", name, err))
		}
		if err := reg.AddProvider(name, p); err != nil {
			p.Dispose()
			return err
		}
	}
	return nil
}

// PatchIndicators attaches every configured indicator to its provider: the profile's
// provider, a provider shared by every indicator of the same color, or the default one.
func (w *Wall) PatchIndicators(patched []config.PatchedIndicator) error {
	for _, pi := range patched {
		ind := &indicator{
			name:    pi.Name,
			row:     pi.Row,
			col:     pi.Col,
			on:      pi.On,
			release: func() {},
		}

		if !pi.Steady {
			p, err := w.resolveProvider(pi)
			if err != nil {
				return err
			}
			p.Retain()
			ind.provider = p
			ind.brush, ind.release = p.AcquireBrush(w.ui)
		}

		w.mu.Lock()
		w.indicators = append(w.indicators, ind)
		w.mu.Unlock()

		w.log.WithFields(logrus.Fields{
			"indicator": ind.name,
			"row":       ind.row,
			"col":       ind.col,
			"steady":    pi.Steady,
		}).Debug("Patched indicator")
	}
	return nil
}

func (w *Wall) resolveProvider(pi config.PatchedIndicator) (*provider.Provider, error) {
	switch {
	case pi.Profile != "":
		p, ok := w.registry.Provider(pi.Profile)
		if !ok {
			return nil, errors.WithStackTrace(fmt.Errorf("indicator %q: no provider for profile %q", pi.Name, pi.Profile))
		}
		return p, nil

	case pi.Color != "":
		c, err := utils.ParseColor(pi.Color)
		if err != nil {
			return nil, errors.WithStackTrace(err)
		}
		return w.registry.ProviderForColor(c, func(c utils.Color) (*provider.Provider, error) {
			cfg := w.defaults
			cfg.Name = c.String()
			cfg.Color = c.String()
			return w.newProvider(cfg)
		})

	default:
		return w.registry.DefaultProvider(), nil
	}
}
