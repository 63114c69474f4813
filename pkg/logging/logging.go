package logging

import (
	"go.uber.org/zap"
)

// New builds the application logger. Debug mode switches to the development
// config with human-readable output. The logger is returned to the caller
// rather than installed globally; components receive it explicitly.
func New(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	return cfg.Build()
}
