// Package config reads hardware and broker settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Buttons Buttons
	MQTT    MQTT
}

// Buttons are BCM pin numbers of the push buttons, used with -buttons.
type Buttons struct {
	UpPin     int           `env:"COLORBROWSER_BUTTON_UP_PIN,default=5"`
	SelectPin int           `env:"COLORBROWSER_BUTTON_SELECT_PIN,default=6"`
	DownPin   int           `env:"COLORBROWSER_BUTTON_DOWN_PIN,default=13"`
	Poll      time.Duration `env:"COLORBROWSER_BUTTON_POLL,default=10ms"`
}

// MQTT configures color publishing. An empty URL disables it.
type MQTT struct {
	URL      string `env:"COLORBROWSER_MQTT_URL"`
	Topic    string `env:"COLORBROWSER_MQTT_TOPIC,default=colorbrowser/color"`
	ClientID string `env:"COLORBROWSER_MQTT_CLIENT_ID,default=colorbrowser"`
}

// Enabled reports whether a broker is configured.
func (m MQTT) Enabled() bool { return m.URL != "" }

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFrom(ctx context.Context, env map[string]string) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, envconfig.MapLookuper(env)); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	pins := map[int]string{}
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"up", c.Buttons.UpPin},
		{"select", c.Buttons.SelectPin},
		{"down", c.Buttons.DownPin},
	} {
		if p.pin < 0 {
			return fmt.Errorf("config: %s pin %d is negative", p.name, p.pin)
		}
		if other, ok := pins[p.pin]; ok {
			return fmt.Errorf("config: %s and %s share pin %d", other, p.name, p.pin)
		}
		pins[p.pin] = p.name
	}
	if c.Buttons.Poll <= 0 {
		return fmt.Errorf("config: button poll must be positive, got %s", c.Buttons.Poll)
	}
	if c.MQTT.Enabled() && c.MQTT.Topic == "" {
		return fmt.Errorf("config: mqtt topic is empty")
	}
	return nil
}
