package config

const (
	defaultStagingDir        = "~/.local/share/subburn/staging"
	defaultLogDir            = "~/.local/share/subburn/logs"
	defaultTranscriptCache   = "~/.cache/subburn/transcripts.db"
	defaultMaxChars          = 60
	defaultRecognizerModel   = "small"
	defaultRecognizerLang    = "en"
	defaultFontSize          = 28.0
	defaultTextColor         = "#FFFFFF"
	defaultOutlineColor      = "#000000"
	defaultBackgroundColor   = "#000000"
	defaultBackgroundOpacity = 0.6
	defaultPosition          = "bottom"
	defaultLogFormat         = "auto"
	defaultLogLevel          = "info"
)

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Segmenter: Segmenter{
			MaxChars: defaultMaxChars,
		},
		Recognizer: Recognizer{
			Model:        defaultRecognizerModel,
			Language:     defaultRecognizerLang,
			CacheEnabled: true,
			CachePath:    defaultTranscriptCache,
		},
		Style: Style{
			FontSize:          defaultFontSize,
			TextColor:         defaultTextColor,
			OutlineColor:      defaultOutlineColor,
			BackgroundColor:   defaultBackgroundColor,
			BackgroundOpacity: defaultBackgroundOpacity,
			Position:          defaultPosition,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
