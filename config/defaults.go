package config

import "github.com/binzume/spineconv/spine"

const (
	defaultOutputSuffix = "_v38"
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultWorkers      = 4
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TargetVersion:         spine.Version38,
		OutputSuffix:          defaultOutputSuffix,
		Exclude:               []string{"-new.json"},
		ElideDefaultTimelines: true,
		Workers:               defaultWorkers,
		ImageExtensions:       []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tga", ".psd"},
		InjectAtlasSize:       true,
		RewriteAtlasRefs:      true,
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
