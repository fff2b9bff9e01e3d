// Package logging provides categorized structured logging for the warehouse
// engine, backed by zap.
// Until Initialize is called every category logs to a no-op core, so library
// callers and tests stay silent unless a binary opts in.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, config loading
	CategoryKernel    Category = "kernel"    // Mangle cross-check kernel
	CategoryEnumerate Category = "enumerate" // Model enumeration runs
	CategoryScenario  Category = "scenario"  // Scenario runner
	CategoryStore     Category = "store"     // Run history persistence
	CategoryRender    Category = "render"    // Grid rendering
)

// Config selects level, encoding and enabled categories.
type Config struct {
	Level      string          `yaml:"level"`  // debug, info, warn, error
	JSONFormat bool            `yaml:"json"`   // JSON lines instead of console text
	Categories map[string]bool `yaml:"categories"`
	Outputs    []string        `yaml:"outputs"` // zap output paths; default stderr
}

// Logger is a category-scoped sugared zap logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	config  Config
	loggers = make(map[Category]*Logger)
)

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize builds the root logger. It may be called again to reconfigure.
func Initialize(cfg Config) error {
	var zc zap.Config
	if cfg.JSONFormat {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zc.DisableStacktrace = true
	if len(cfg.Outputs) > 0 {
		zc.OutputPaths = cfg.Outputs
	} else {
		zc.OutputPaths = []string{"stderr"}
	}

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Use(l, cfg)
	Get(CategoryBoot).Debug("logging initialized: level=%s json=%v", cfg.Level, cfg.JSONFormat)
	return nil
}

// Use installs an existing zap logger as the root, e.g. one built by a CLI.
func Use(l *zap.Logger, cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
	config = cfg
	loggers = make(map[Category]*Logger)
}

// Reset restores the silent default.
func Reset() {
	Use(nil, Config{})
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}

// IsCategoryEnabled returns whether a specific category is enabled.
// Categories absent from the config are enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	enabled, ok := config.Categories[string(category)]
	return !ok || enabled
}

// Get returns (or creates) a logger for the given category.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	enabled := IsCategoryEnabled(category)

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	base := root
	if !enabled {
		base = zap.NewNop()
	}
	l := &Logger{category: category, sugar: base.Named(string(category)).Sugar()}
	loggers[category] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a logger carrying key-value context on every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debug(format, args...)
}

// Kernel logs to the kernel category
func Kernel(format string, args ...interface{}) {
	Get(CategoryKernel).Info(format, args...)
}

// KernelDebug logs debug to the kernel category
func KernelDebug(format string, args ...interface{}) {
	Get(CategoryKernel).Debug(format, args...)
}

// KernelError logs error to the kernel category
func KernelError(format string, args ...interface{}) {
	Get(CategoryKernel).Error(format, args...)
}

// Enumerate logs to the enumerate category
func Enumerate(format string, args ...interface{}) {
	Get(CategoryEnumerate).Info(format, args...)
}

// EnumerateDebug logs debug to the enumerate category
func EnumerateDebug(format string, args ...interface{}) {
	Get(CategoryEnumerate).Debug(format, args...)
}

// Scenario logs to the scenario category
func Scenario(format string, args ...interface{}) {
	Get(CategoryScenario).Info(format, args...)
}

// ScenarioError logs error to the scenario category
func ScenarioError(format string, args ...interface{}) {
	Get(CategoryScenario).Error(format, args...)
}

// Store logs to the store category
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Info(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debug(format, args...)
}

// StoreError logs error to the store category
func StoreError(format string, args ...interface{}) {
	Get(CategoryStore).Error(format, args...)
}

// RenderDebug logs debug to the render category
func RenderDebug(format string, args ...interface{}) {
	Get(CategoryRender).Debug(format, args...)
}
