package config

const (
	defaultDataDir        = "~/.local/share/pokedex/data"
	defaultLogDir         = "~/.local/share/pokedex/logs"
	defaultBaseURL        = "https://pokeapi.co/api/v2"
	defaultLanguage       = "en"
	defaultTimeoutSeconds = 10
	defaultMaxRetries     = 3
	defaultDexMinID       = 1
	defaultDexMaxID       = 1025
	defaultInputDevice    = "gpio-keys"
	defaultDebounceMS     = 200
	defaultDisplayWidth   = 40
	defaultBatchSize      = 50
	defaultPageDelayMS    = 200
	defaultFetchDelayMS   = 100
	defaultRetryDelaySec  = 1
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		PokeAPI: PokeAPI{
			BaseURL:        defaultBaseURL,
			Language:       defaultLanguage,
			TimeoutSeconds: defaultTimeoutSeconds,
			MaxRetries:     defaultMaxRetries,
		},
		Dex: Dex{
			MinID: defaultDexMinID,
			MaxID: defaultDexMaxID,
		},
		Input: Input{
			DeviceName: defaultInputDevice,
			DebounceMS: defaultDebounceMS,
		},
		Display: Display{
			Width: defaultDisplayWidth,
			Color: true,
		},
		Populate: Populate{
			BatchSize:     defaultBatchSize,
			PageDelayMS:   defaultPageDelayMS,
			FetchDelayMS:  defaultFetchDelayMS,
			RetryDelaySec: defaultRetryDelaySec,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Populate:       true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
