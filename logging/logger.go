package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// globalConfig is set once by Init and consulted by every NewLogger
// call thereafter; it defaults to info level with no caller reporting
// when Init was never called (e.g. in tests).
var globalConfig Config

// Init installs the logging configuration read from the engine config
// file. Call once at startup before any component logger is created.
func Init(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	globalConfig = cfg
}

// NewLogger returns the singleton *logrus.Entry for component,
// creating and configuring it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(GetGlobalOutput())

	levelStr := "info"
	if env := os.Getenv("NVIMGUI_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if globalConfig.Level != "" {
		levelStr = globalConfig.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("NVIMGUI_LOG_CALLER") == "true" || globalConfig.ReportCaller {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(&TextFormatter{Config: globalConfig.Format})

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
