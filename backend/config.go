package backend

import (
	"os"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type AppConfig struct {
	WindowWidth        int
	WindowHeight       int
	AllowMultiInstance bool
	ShowArtwork        bool
	TintBackground     bool
}

type PollingConfig struct {
	IntervalMS       int
	RenderIntervalMS int

	// Case-insensitive MPRIS identity or bus name prefix, e.g. "spotify".
	// Empty selects automatically.
	PreferredPlayer string
}

type MarqueeConfig struct {
	Enabled      bool
	WindowChars  int
	TickMS       int
	StartPauseMS int
	Gap          string
}

type ArtworkConfig struct {
	SizePx          int
	CacheEntries    int
	FetchTimeoutSec int
}

type Config struct {
	Application AppConfig
	Polling     PollingConfig
	Marquee     MarqueeConfig
	Artwork     ArtworkConfig
}

func DefaultConfig() *Config {
	return &Config{
		Application: AppConfig{
			WindowWidth:        760,
			WindowHeight:       290,
			AllowMultiInstance: false,
			ShowArtwork:        true,
			TintBackground:     false,
		},
		Polling: PollingConfig{
			IntervalMS:       500,
			RenderIntervalMS: 500,
		},
		Marquee: MarqueeConfig{
			Enabled:      true,
			WindowChars:  36,
			TickMS:       350,
			StartPauseMS: 3500,
			Gap:          "   •   ",
		},
		Artwork: ArtworkConfig{
			SizePx:          86,
			CacheEntries:    16,
			FetchTimeoutSec: 5,
		},
	}
}

func ReadConfigFile(filepath string) (*Config, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := DefaultConfig()
	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return nil, err
	}
	c.clampValues()
	return c, nil
}

func (c *Config) clampValues() {
	c.Application.WindowWidth = clamp(c.Application.WindowWidth, 200, 4000)
	c.Application.WindowHeight = clamp(c.Application.WindowHeight, 120, 4000)
	c.Polling.IntervalMS = clamp(c.Polling.IntervalMS, 100, 10_000)
	c.Polling.RenderIntervalMS = clamp(c.Polling.RenderIntervalMS, 50, 10_000)
	c.Marquee.WindowChars = clamp(c.Marquee.WindowChars, 8, 200)
	c.Marquee.TickMS = clamp(c.Marquee.TickMS, 50, 5_000)
	c.Marquee.StartPauseMS = clamp(c.Marquee.StartPauseMS, 0, 60_000)
	c.Artwork.SizePx = clamp(c.Artwork.SizePx, 16, 512)
	c.Artwork.CacheEntries = clamp(c.Artwork.CacheEntries, 2, 256)
	c.Artwork.FetchTimeoutSec = clamp(c.Artwork.FetchTimeoutSec, 1, 60)
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Polling.IntervalMS) * time.Millisecond
}

func (c *Config) RenderInterval() time.Duration {
	return time.Duration(c.Polling.RenderIntervalMS) * time.Millisecond
}

var writeLock sync.Mutex

func (c *Config) WriteConfigFile(filepath string) error {
	if !writeLock.TryLock() {
		return nil // another write in progress
	}
	defer writeLock.Unlock()

	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, b, 0644)
}

func clamp(i, min, max int) int {
	if i < min {
		i = min
	} else if i > max {
		i = max
	}
	return i
}
