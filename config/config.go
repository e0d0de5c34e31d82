package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/xeptore/yamdl/redact"
)

type Config struct {
	Log      Log      `yaml:"log"`
	Download Download `yaml:"download"`
	Cache    Cache    `yaml:"cache"`
	Yandex   Yandex   `yaml:"yandex"`
}

func (c *Config) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Dict("log", c.Log.ToDict()).
		Dict("download", c.Download.ToDict()).
		Dict("cache", c.Cache.ToDict()).
		Dict("yandex", c.Yandex.ToDict())
}

func (c *Config) setDefaults() {
	c.Log.setDefaults()
	c.Download.setDefaults()
	c.Cache.setDefaults()
	c.Yandex.setDefaults()
}

func (c *Config) validate() error {
	if err := c.Log.validate(); nil != err {
		return fmt.Errorf("log config validation failed: %v", err)
	}

	if err := c.Download.validate(); nil != err {
		return fmt.Errorf("download config validation failed: %v", err)
	}

	if err := c.Cache.validate(); nil != err {
		return fmt.Errorf("cache config validation failed: %v", err)
	}

	if err := c.Yandex.validate(); nil != err {
		return fmt.Errorf("yandex config validation failed: %v", err)
	}

	return nil
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Log) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("level", c.Level).
		Str("format", c.Format)
}

func (c *Log) setDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}

	if c.Format == "" {
		c.Format = "pretty"
	}
}

func (c *Log) validate() error {
	if !slices.Contains([]string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}, c.Level) {
		return fmt.Errorf(
			"level must be one of: trace, debug, info, warn, error, fatal, panic, got: %s",
			c.Level,
		)
	}

	if !slices.Contains([]string{"json", "pretty"}, c.Format) {
		return fmt.Errorf("format must be 'json' or 'pretty', got: %s", c.Format)
	}

	return nil
}

type Download struct {
	Dir         string `yaml:"dir"`
	Quality     string `yaml:"quality"`
	Concurrency int    `yaml:"concurrency"`
}

func (c *Download) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("dir", c.Dir).
		Str("quality", c.Quality).
		Int("concurrency", c.Concurrency)
}

func (c *Download) setDefaults() {
	if c.Dir == "" {
		c.Dir = "./music"
	}

	if c.Quality == "" {
		c.Quality = "high"
	}

	if c.Concurrency == 0 {
		c.Concurrency = 1
	}
}

func (c *Download) validate() error {
	if !slices.Contains([]string{"lossless", "high", "normal"}, c.Quality) {
		return fmt.Errorf("quality must be one of: lossless, high, normal, got: %s", c.Quality)
	}

	if c.Concurrency < 1 {
		return errors.New("concurrency must be greater than 0")
	}

	return nil
}

type Cache struct {
	Enabled  *bool  `yaml:"enabled"`
	Path     string `yaml:"path"`
	TTLHours int    `yaml:"ttl_hours"`
}

func (c *Cache) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Bool("enabled", *c.Enabled).
		Str("path", c.Path).
		Int("ttl_hours", c.TTLHours)
}

func (c *Cache) setDefaults() {
	if nil == c.Enabled {
		c.Enabled = lo.ToPtr(true)
	}

	if c.Path == "" {
		c.Path = "./cache/metadata.json"
	}

	if c.TTLHours == 0 {
		c.TTLHours = 24
	}
}

func (c *Cache) validate() error {
	if c.TTLHours < 0 {
		return errors.New("ttl_hours must be greater than or equal to 0")
	}

	return nil
}

type Yandex struct {
	Token    string         `yaml:"-"`
	Timeouts YandexTimeouts `yaml:"timeouts"`
}

func (c *Yandex) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("token", redact.String(c.Token)).
		Dict("timeouts", c.Timeouts.ToDict())
}

func (c *Yandex) setDefaults() {
	c.Timeouts.setDefaults()
}

func (c *Yandex) validate() error {
	if c.Token == "" {
		return errors.New("make sure the YANDEX_MUSIC_TOKEN environment variable is set")
	}

	if err := c.Timeouts.validate(); nil != err {
		return fmt.Errorf("timeouts config validation failed: %v", err)
	}

	return nil
}

type YandexTimeouts struct {
	CatalogRequest  int `yaml:"catalog_request"`
	GetFileInfo     int `yaml:"get_file_info"`
	DownloadTrack   int `yaml:"download_track"`
	DownloadCover   int `yaml:"download_cover"`
	ResolvePlaylist int `yaml:"resolve_playlist"`
}

func (c *YandexTimeouts) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Int("catalog_request", c.CatalogRequest).
		Int("get_file_info", c.GetFileInfo).
		Int("download_track", c.DownloadTrack).
		Int("download_cover", c.DownloadCover).
		Int("resolve_playlist", c.ResolvePlaylist)
}

func (c *YandexTimeouts) setDefaults() {
	if c.CatalogRequest == 0 {
		c.CatalogRequest = 10
	}

	if c.GetFileInfo == 0 {
		c.GetFileInfo = 10
	}

	if c.DownloadTrack == 0 {
		c.DownloadTrack = 600
	}

	if c.DownloadCover == 0 {
		c.DownloadCover = 10
	}

	if c.ResolvePlaylist == 0 {
		c.ResolvePlaylist = 10
	}
}

func (c *YandexTimeouts) validate() error {
	if c.CatalogRequest < 0 {
		return errors.New("catalog_request must be greater than 0")
	}

	if c.GetFileInfo < 0 {
		return errors.New("get_file_info must be greater than 0")
	}

	if c.DownloadTrack < 0 {
		return errors.New("download_track must be greater than 0")
	}

	if c.DownloadCover < 0 {
		return errors.New("download_cover must be greater than 0")
	}

	if c.ResolvePlaylist < 0 {
		return errors.New("resolve_playlist must be greater than 0")
	}

	return nil
}

func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(lo.Ternary(len(filename) > 0, filename, "config.yaml"))
	if nil != err {
		return nil, fmt.Errorf("failed to read config file %s: %v", filename, err)
	}

	var conf Config
	if err := yaml.Unmarshal(data, &conf); nil != err {
		return nil, fmt.Errorf("failed to parse config file %s: %v", filename, err)
	}

	conf.Yandex.Token = os.Getenv("YANDEX_MUSIC_TOKEN")
	conf.setDefaults()

	if err := conf.validate(); nil != err {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return &conf, nil
}
