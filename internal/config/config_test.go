package config

import (
	"path/filepath"
	"testing"
)

func TestStoreWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slab.yaml")
	store, err := NewStore(NewYAML(path))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Tags) != 9 {
		t.Errorf("tags = %d, want 9", len(cfg.Tags))
	}
	if cfg.Layout != "tile" {
		t.Errorf("layout = %q, want tile", cfg.Layout)
	}
	if cfg.MFact != 0.55 {
		t.Errorf("mfact = %v, want 0.55", cfg.MFact)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, driver := range map[string]Driver{
		"yaml": NewYAML(filepath.Join(t.TempDir(), "slab.yaml")),
		"json": NewJSON(filepath.Join(t.TempDir(), "slab.json")),
	} {
		t.Run(name, func(t *testing.T) {
			store, err := NewStore(driver)
			if err != nil {
				t.Fatal(err)
			}

			err = store.UpdateConfig(func(cfg Config) (Config, error) {
				cfg.NMaster = 3
				cfg.Rules = append(cfg.Rules, Rule{Class: "mpv", Floating: true})
				return cfg, nil
			})
			if err != nil {
				t.Fatal(err)
			}

			cfg, err := store.GetConfig()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.NMaster != 3 {
				t.Errorf("nmaster = %d, want 3", cfg.NMaster)
			}
			if len(cfg.Rules) != 1 || cfg.Rules[0].Class != "mpv" {
				t.Errorf("rules = %+v, want single mpv rule", cfg.Rules)
			}
		})
	}
}

func TestNormalizeAssignsRuleUUIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slab.yaml")
	store, err := NewStore(NewYAML(path))
	if err != nil {
		t.Fatal(err)
	}
	err = store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.Rules = []Rule{{Class: "Gimp", Floating: true}, {UUID: "keep-me", Title: "scratch"}}
		return cfg, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := NormalizeConfig(&store); err != nil {
		t.Fatal(err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules[0].UUID == "" {
		t.Error("first rule did not get a uuid")
	}
	if cfg.Rules[1].UUID != "keep-me" {
		t.Errorf("existing uuid overwritten: %q", cfg.Rules[1].UUID)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no tags", mutate: func(c *Config) { c.Tags = nil }, wantErr: true},
		{name: "mfact too small", mutate: func(c *Config) { c.MFact = 0.01 }, wantErr: true},
		{name: "unknown layout", mutate: func(c *Config) { c.Layout = "spiral" }, wantErr: true},
		{name: "negative nmaster", mutate: func(c *Config) { c.NMaster = -1 }, wantErr: true},
		{name: "rule mask out of range", mutate: func(c *Config) {
			c.Rules = []Rule{{Tags: 1 << 20}}
			c.Tags = []string{"1", "2"}
		}, wantErr: true},
		{name: "button out of range", mutate: func(c *Config) {
			c.Buttons = []Button{{Button: 9, Action: "movemouse"}}
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
