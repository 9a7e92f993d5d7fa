package config

const (
	defaultDataDir          = "~/.local/share/shelfpace"
	defaultLogDir           = "~/.local/share/shelfpace/logs"
	defaultAPIBind          = "127.0.0.1:7319"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultPlexSectionKey   = ""
	defaultPlexReadingSpeed = 1.0
	defaultPlexPushProgress = true
	defaultPlexEnabled      = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Plex: Plex{
			Enabled:             defaultPlexEnabled,
			SectionKey:          defaultPlexSectionKey,
			PushProgress:        defaultPlexPushProgress,
			DefaultReadingSpeed: defaultPlexReadingSpeed,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
