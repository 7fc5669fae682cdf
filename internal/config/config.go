package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"telegram-video-bridge/internal/domain/model"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token      string        `yaml:"token" env:"BOT_TOKEN"`
	Username   string        `yaml:"username" env:"BOT_USERNAME"`
	ChatDomain string        `yaml:"chat_domain" env:"BOT_CHAT_DOMAIN"` // host of the public chat link
	Workers    int           `yaml:"workers" env:"BOT_WORKERS"`         // polling workers
	ReadyWait  time.Duration `yaml:"ready_wait" env:"BOT_READY_WAIT"`
	Lang       string        `yaml:"lang" env:"BOT_LANG"`
}

// ChatURL is the public link that opens the direct chat with the bot.
func (b BotConfig) ChatURL() string {
	return fmt.Sprintf("https://%s/%s", b.ChatDomain, strings.TrimPrefix(b.Username, "@"))
}

// ChannelConfig names the source channel: a numeric chat id or its public @username.
type ChannelConfig struct {
	ID string `yaml:"id" env:"CHANNEL_ID"`
}

type WebConfig struct {
	Port    int           `yaml:"port" env:"PORT"`
	Secret  string        `yaml:"secret" env:"WEBHOOK_SECRET"`
	BaseURL string        `yaml:"base_url" env:"WEBSITE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT"`
}

type DeliveryConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"DELIVERY_TIMEOUT"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"`   // trace|debug|info|warn|error
	Format   string `yaml:"format" env:"LOG_FORMAT"` // json|console
	Sampling bool   `yaml:"sampling" env:"LOG_SAMPLING"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Channel  ChannelConfig  `yaml:"channel"`
	Web      WebConfig      `yaml:"web"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Log      LogConfig      `yaml:"log"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file at path and overlays environment variables on top.
// A missing file is fine; the environment alone can configure the service.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Runtime.Dev = dev
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 4
	}
	if cfg.Bot.ChatDomain == "" {
		cfg.Bot.ChatDomain = "t.me"
	}
	if cfg.Bot.ReadyWait <= 0 {
		cfg.Bot.ReadyWait = 2 * time.Second
	}
	if cfg.Bot.Lang == "" {
		cfg.Bot.Lang = "en"
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 5000
	}
	if cfg.Web.Timeout <= 0 {
		cfg.Web.Timeout = 30 * time.Second
	}
	if cfg.Delivery.Timeout <= 0 {
		cfg.Delivery.Timeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

func (c *Config) validate() error {
	if _, err := model.ParseChannel(c.Channel.ID); err != nil {
		return fmt.Errorf("channel.id (CHANNEL_ID): %w", err)
	}
	if c.Bot.Token == "" && !c.Runtime.Dev {
		return errors.New("bot.token (BOT_TOKEN) is required")
	}
	return nil
}

// Warnings lists settings that are allowed but probably wrong.
func (c *Config) Warnings() []string {
	var w []string
	if c.Bot.Username == "" {
		w = append(w, "bot.username (BOT_USERNAME) not set; redirects point at "+c.Bot.ChatURL())
	}
	return w
}
