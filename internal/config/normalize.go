package config

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/slabwm/slab/internal/layout"
)

// MaxTags bounds the tag count so every tag fits in the bitset with one
// bit to spare for the sticky sentinel.
const MaxTags = 31

// NormalizeConfig assigns ids to rules missing one and validates the
// fields the engine depends on, writing the result back through the
// store.
func NormalizeConfig(store *Store) error {
	return store.UpdateConfig(func(cfg Config) (Config, error) {
		for i := range cfg.Rules {
			if cfg.Rules[i].UUID == "" {
				cfg.Rules[i].UUID = uuid.NewString()
			}
		}

		return cfg, Validate(cfg)
	})
}

func Validate(cfg Config) error {
	if len(cfg.Tags) == 0 || len(cfg.Tags) > MaxTags {
		return fmt.Errorf("tags: count %d out of range 1..%d", len(cfg.Tags), MaxTags)
	}
	if cfg.MFact < 0.05 || cfg.MFact > 0.95 {
		return fmt.Errorf("mfact: %v out of range 0.05..0.95", cfg.MFact)
	}
	if cfg.NMaster < 0 {
		return fmt.Errorf("nmaster: %d negative", cfg.NMaster)
	}
	if cfg.BorderWidth < 0 {
		return fmt.Errorf("border_width: %d negative", cfg.BorderWidth)
	}
	if cfg.BarHeight < 1 {
		return fmt.Errorf("bar_height: %d out of range", cfg.BarHeight)
	}
	if _, err := layout.ByName(layout.Name(cfg.Layout)); err != nil {
		return err
	}
	for i, r := range cfg.Rules {
		if r.Tags>>uint(len(cfg.Tags)) != 0 {
			return fmt.Errorf("rules[%d]: tag mask %#x exceeds %d tags", i, r.Tags, len(cfg.Tags))
		}
		if r.Monitor < -1 {
			return fmt.Errorf("rules[%d]: monitor %d invalid", i, r.Monitor)
		}
	}
	for i, b := range cfg.Buttons {
		if b.Button < 1 || b.Button > 5 {
			return fmt.Errorf("buttons[%d]: button %d out of range 1..5", i, b.Button)
		}
	}
	return nil
}
