package termevconf

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHistory        = 512
	defaultResizeInterval = 100 * time.Millisecond
)

type Config struct {
	LogPath        string
	MouseReporting bool
	History        int
	ResizeInterval time.Duration
}

// Load reads settings from a .env file, if one exists, and the process
// environment. Flag values override anything loaded here.
func Load() *Config {
	godotenv.Load()

	conf := &Config{
		MouseReporting: true,
		History:        defaultHistory,
		ResizeInterval: defaultResizeInterval,
	}

	if path := os.Getenv("TERMEV_LOG_PATH"); path != "" {
		conf.LogPath = path
	}

	if mouse := os.Getenv("TERMEV_MOUSE"); mouse != "" {
		conf.MouseReporting = mouse != "0" && mouse != "false"
	}

	if history := os.Getenv("TERMEV_HISTORY"); history != "" {
		if val, err := strconv.Atoi(history); err == nil && val > 0 {
			conf.History = val
		}
	}

	if interval := os.Getenv("TERMEV_RESIZE_INTERVAL_MS"); interval != "" {
		if val, err := strconv.Atoi(interval); err == nil && val > 0 {
			conf.ResizeInterval = time.Duration(val) * time.Millisecond
		}
	}

	return conf
}
