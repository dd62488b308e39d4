package main

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/vasquezjesus2710/next-form-project/internal/logger"
)

const (
	prefKeyPickerDir     = "picker_dir"
	prefKeyMaxManifestMB = "max_manifest_mb"
	prefKeyTickMillis    = "tick_millis"

	defaultMaxManifestMB = 64
	minMaxManifestMB     = 1
	maxMaxManifestMB     = 1024

	defaultTickMillis = 100
	minTickMillis     = 20
	maxTickMillis     = 1000
)

// AppConfig holds the user-tunable defaults persisted via Fyne preferences.
type AppConfig struct {
	PickerDir     string
	MaxManifestMB int
	TickMillis    int
}

func clampMaxManifestMB(v int) (int, bool) {
	if v < minMaxManifestMB {
		return minMaxManifestMB, true
	}
	if v > maxMaxManifestMB {
		return maxMaxManifestMB, true
	}
	return v, false
}

func clampTickMillis(v int) (int, bool) {
	if v < minTickMillis {
		return minTickMillis, true
	}
	if v > maxTickMillis {
		return maxTickMillis, true
	}
	return v, false
}

func loadConfig() AppConfig {
	prefs := fyne.CurrentApp().Preferences()

	cfg := AppConfig{
		PickerDir:     prefs.StringWithFallback(prefKeyPickerDir, ""),
		MaxManifestMB: prefs.IntWithFallback(prefKeyMaxManifestMB, defaultMaxManifestMB),
		TickMillis:    prefs.IntWithFallback(prefKeyTickMillis, defaultTickMillis),
	}

	if v, clamped := clampMaxManifestMB(cfg.MaxManifestMB); clamped {
		logger.Warn("Max manifest size out of range, clamping",
			"stored", cfg.MaxManifestMB, "clamped", v)
		cfg.MaxManifestMB = v
		prefs.SetInt(prefKeyMaxManifestMB, v)
	}
	if v, clamped := clampTickMillis(cfg.TickMillis); clamped {
		logger.Warn("Progress tick interval out of range, clamping",
			"stored", cfg.TickMillis, "clamped", v)
		cfg.TickMillis = v
		prefs.SetInt(prefKeyTickMillis, v)
	}

	return cfg
}

func (c AppConfig) save() {
	prefs := fyne.CurrentApp().Preferences()
	prefs.SetString(prefKeyPickerDir, c.PickerDir)
	prefs.SetInt(prefKeyMaxManifestMB, c.MaxManifestMB)
	prefs.SetInt(prefKeyTickMillis, c.TickMillis)
}

func (c AppConfig) maxManifestBytes() int64 {
	return int64(c.MaxManifestMB) * 1024 * 1024
}

func (c AppConfig) tickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}
