// Package config loads application configuration from defaults, an
// optional YAML file under ~/.mudra, and MUDRA_-prefixed environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Config holds application configuration.
type Config struct {
	Camera     CameraConfig       `mapstructure:"camera"`
	Detector   detector.Config    `mapstructure:"detector"`
	Gesture    gesture.Tolerances `mapstructure:"gesture"`
	Stabilizer StabilizerConfig   `mapstructure:"stabilizer"`
	Cooldown   CooldownConfig     `mapstructure:"cooldown"`
	Voice      VoiceConfig        `mapstructure:"voice"`
	Server     ServerConfig       `mapstructure:"server"`
	Database   DatabaseConfig     `mapstructure:"database"`
}

// CameraConfig holds capture settings. The pipeline runs at ActiveFPS
// while motion is seen and drops to IdleFPS after IdleTimeoutSec seconds
// without it.
type CameraConfig struct {
	DeviceID        int     `mapstructure:"device_id"`
	Mirror          bool    `mapstructure:"mirror"`
	ActiveFPS       int     `mapstructure:"active_fps"`
	IdleFPS         int     `mapstructure:"idle_fps"`
	IdleTimeoutSec  int     `mapstructure:"idle_timeout_sec"`
	MotionThreshold float64 `mapstructure:"motion_threshold"`
}

// StabilizerConfig controls the confirmation window: a gesture is
// confirmed when at least Fraction of the last Window frames agree.
type StabilizerConfig struct {
	Window   int     `mapstructure:"window"`
	Fraction float64 `mapstructure:"fraction"`
}

// CooldownConfig controls how many frames must pass between two
// accepted gestures.
type CooldownConfig struct {
	Frames int `mapstructure:"frames"`
}

// VoiceConfig holds speech output settings.
type VoiceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ServerConfig holds the HTTP status server settings.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Dir returns the application data directory (~/.mudra).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

// Load reads configuration from file and env. Env var overrides use
// prefix MUDRA_, with dots replaced by underscores.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("camera.device_id", 0)
	v.SetDefault("camera.mirror", true)
	v.SetDefault("camera.active_fps", 15)
	v.SetDefault("camera.idle_fps", 2)
	v.SetDefault("camera.idle_timeout_sec", 10)
	v.SetDefault("camera.motion_threshold", 1.0)

	def := detector.DefaultConfig()
	v.SetDefault("detector.max_hands", def.MaxHands)
	v.SetDefault("detector.min_detection_confidence", def.MinDetectionConfidence)
	v.SetDefault("detector.min_tracking_confidence", def.MinTrackingConfidence)

	tol := gesture.DefaultTolerances()
	v.SetDefault("gesture.thumb_ratio", tol.ThumbRatio)
	v.SetDefault("gesture.finger_ratio", tol.FingerRatio)
	v.SetDefault("gesture.finger_angle_deg", tol.FingerAngleDeg)
	v.SetDefault("gesture.vertical_margin", tol.VerticalMargin)
	v.SetDefault("gesture.thumb_margin", tol.ThumbMargin)
	v.SetDefault("gesture.cross_angle_min_deg", tol.CrossAngleMinDeg)
	v.SetDefault("gesture.cross_angle_max_deg", tol.CrossAngleMaxDeg)
	v.SetDefault("gesture.cross_tip_distance", tol.CrossTipDistance)
	v.SetDefault("gesture.cross_base_separation", tol.CrossBaseSeparation)

	v.SetDefault("stabilizer.window", 10)
	v.SetDefault("stabilizer.fraction", 0.70)
	v.SetDefault("cooldown.frames", 25)

	v.SetDefault("voice.enabled", true)
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.addr", "127.0.0.1:8765")
	v.SetDefault("database.path", filepath.Join(Dir(), "mudra.db"))

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("MUDRA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MUDRA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional.
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Stabilizer.Window < 1 {
		return fmt.Errorf("stabilizer.window must be at least 1, got %d", c.Stabilizer.Window)
	}
	if c.Stabilizer.Fraction <= 0 || c.Stabilizer.Fraction > 1 {
		return fmt.Errorf("stabilizer.fraction must be in (0, 1], got %v", c.Stabilizer.Fraction)
	}
	if c.Cooldown.Frames < 0 {
		return fmt.Errorf("cooldown.frames must not be negative, got %d", c.Cooldown.Frames)
	}
	if c.Camera.ActiveFPS < 1 || c.Camera.IdleFPS < 1 {
		return fmt.Errorf("camera fps settings must be at least 1")
	}
	return nil
}
