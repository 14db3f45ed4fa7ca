package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	defaultTick   = 250 * time.Millisecond
	defaultVolume = -1.0

	envPlayers  = "TRACKSYNC_PLAYERS"
	envTick     = "TRACKSYNC_TICK"
	envAutoPlay = "TRACKSYNC_AUTOPLAY"
	envVolume   = "TRACKSYNC_VOLUME"

	flagPlayers  = "players"
	flagTick     = "tick"
	flagAutoPlay = "autoplay"
	flagVolume   = "volume"
	FlagDebug    = "debug"
)

// AppConfig holds application configuration
type AppConfig struct {
	logger   *zap.Logger
	players  []string
	tick     time.Duration
	autoPlay bool
	volume   float64
}

// RegisterFlags adds the daemon flags to fs. Values left unset fall back to
// the environment and then to the defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSlice(flagPlayers, nil, "MPRIS players to group, by well-known bus name or short name (vlc, mpv)")
	fs.Duration(flagTick, defaultTick, "interval between timeupdate polls while playing")
	fs.Bool(flagAutoPlay, false, "start playback once every player can play through")
	fs.Float64(flagVolume, defaultVolume, "group volume 0-100 applied at startup, negative leaves players untouched")
	fs.Bool(FlagDebug, false, "enable development logging")
}

// NewAppConfig creates a new application configuration instance.
// Flags explicitly set on fs take precedence over TRACKSYNC_* variables.
func NewAppConfig(logger *zap.Logger, fs *pflag.FlagSet) *AppConfig {
	c := &AppConfig{
		logger:   logger,
		players:  splitPlayers(os.Getenv(envPlayers)),
		tick:     defaultTick,
		autoPlay: false,
		volume:   defaultVolume,
	}

	if raw := os.Getenv(envTick); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			c.tick = d
		} else {
			logger.Warn("Ignoring invalid tick interval", zap.String("env", envTick), zap.String("value", raw))
		}
	}
	if raw := os.Getenv(envAutoPlay); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			c.autoPlay = b
		} else {
			logger.Warn("Ignoring invalid autoplay flag", zap.String("env", envAutoPlay), zap.String("value", raw))
		}
	}
	if raw := os.Getenv(envVolume); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.volume = v
		} else {
			logger.Warn("Ignoring invalid volume", zap.String("env", envVolume), zap.String("value", raw))
		}
	}

	c.applyFlags(fs)

	logger.Info("Configuration loaded",
		zap.Strings("players", c.players),
		zap.Duration("tick", c.tick),
		zap.Bool("autoPlay", c.autoPlay),
		zap.Float64("volume", c.volume))

	return c
}

func (c *AppConfig) applyFlags(fs *pflag.FlagSet) {
	if fs == nil {
		return
	}
	if fs.Changed(flagPlayers) {
		if players, err := fs.GetStringSlice(flagPlayers); err == nil {
			c.players = normalizePlayers(players)
		}
	}
	if fs.Changed(flagTick) {
		if d, err := fs.GetDuration(flagTick); err == nil && d > 0 {
			c.tick = d
		} else {
			c.logger.Warn("Ignoring invalid tick interval", zap.String("flag", flagTick))
		}
	}
	if fs.Changed(flagAutoPlay) {
		if b, err := fs.GetBool(flagAutoPlay); err == nil {
			c.autoPlay = b
		}
	}
	if fs.Changed(flagVolume) {
		if v, err := fs.GetFloat64(flagVolume); err == nil {
			c.volume = v
		}
	}
}

// GetPlayers returns the well-known bus names of the players to group, in order
func (c *AppConfig) GetPlayers() []string {
	out := make([]string, len(c.players))
	copy(out, c.players)
	return out
}

// GetTickInterval returns the timeupdate poll interval
func (c *AppConfig) GetTickInterval() time.Duration {
	return c.tick
}

// GetAutoPlay reports whether the group starts once it can play through
func (c *AppConfig) GetAutoPlay() bool {
	return c.autoPlay
}

// GetVolume returns the startup volume (0-100), negative when unset
func (c *AppConfig) GetVolume() float64 {
	return c.volume
}

func splitPlayers(raw string) []string {
	if raw == "" {
		return nil
	}
	return normalizePlayers(strings.Split(raw, ","))
}

// normalizePlayers trims entries, drops empty ones and expands short names
// like "vlc" to "org.mpris.MediaPlayer2.vlc"
func normalizePlayers(names []string) []string {
	const prefix = "org.mpris.MediaPlayer2."

	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if !strings.HasPrefix(n, prefix) {
			n = prefix + n
		}
		out = append(out, n)
	}
	return out
}
