package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogManager writes human readable logs to the console and JSON logs to a
// rotated file in the logs directory.
type LogManager struct {
	logger      *zap.Logger
	rotator     *lumberjack.Logger
	logsDir     string
	logFilePath string
	enabled     bool
}

// NewLogManager creates a new log manager with file output
func NewLogManager(config *Config) *LogManager {
	return newLogManager(config, zapcore.Lock(os.Stdout))
}

func newLogManager(config *Config, console zapcore.WriteSyncer) *LogManager {
	lm := &LogManager{
		logsDir: config.Logging.Dir,
		enabled: true,
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(config.Logging.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), console, level),
	}

	if err := os.MkdirAll(lm.logsDir, 0o755); err != nil {
		fmt.Printf("Warning: Failed to create logs directory: %v\n", err)
		lm.enabled = false
	} else {
		lm.logFilePath = filepath.Join(lm.logsDir, AppName+".log")
		lm.rotator = &lumberjack.Logger{
			Filename:   lm.logFilePath,
			MaxSize:    config.Logging.MaxSizeMB,
			MaxBackups: config.Logging.MaxBackups,
			MaxAge:     config.Logging.MaxAgeDays,
			Compress:   config.Logging.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(lm.rotator), level))
	}

	lm.logger = zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named(AppName)
	if lm.enabled {
		lm.LogInfo("Log file ready", "path", lm.logFilePath)
	}
	return lm
}

// Logger returns the structured logger for packages that take a *zap.Logger.
func (lm *LogManager) Logger() *zap.Logger {
	return lm.logger
}

// LogInfo logs an informational message
func (lm *LogManager) LogInfo(message string, keyValuePairs ...string) {
	lm.logger.Info(message, pairs(keyValuePairs)...)
}

// LogDebug logs a debug message
func (lm *LogManager) LogDebug(message string, keyValuePairs ...string) {
	lm.logger.Debug(message, pairs(keyValuePairs)...)
}

// LogError logs an error message
func (lm *LogManager) LogError(message string, err error, keyValuePairs ...string) {
	fields := pairs(keyValuePairs)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	lm.logger.Error(message, fields...)
}

// LogWarning logs a warning message
func (lm *LogManager) LogWarning(message string, keyValuePairs ...string) {
	lm.logger.Warn(message, pairs(keyValuePairs)...)
}

// pairs turns key/value strings into fields; a trailing key without a value
// is dropped.
func pairs(keyValuePairs []string) []zap.Field {
	fields := make([]zap.Field, 0, len(keyValuePairs)/2)
	for i := 0; i+1 < len(keyValuePairs); i += 2 {
		fields = append(fields, zap.String(keyValuePairs[i], keyValuePairs[i+1]))
	}
	return fields
}

// GetLogFilePath returns the current log file path
func (lm *LogManager) GetLogFilePath() string {
	return lm.logFilePath
}

// LogsDir returns the directory holding the log files.
func (lm *LogManager) LogsDir() string {
	return lm.logsDir
}

// Close flushes and closes the log file
func (lm *LogManager) Close() {
	_ = lm.logger.Sync()
	if lm.rotator != nil {
		lm.rotator.Close()
	}
}

// ListLogFiles returns the current log file and its rotated backups
func (lm *LogManager) ListLogFiles() ([]string, error) {
	return filepath.Glob(filepath.Join(lm.logsDir, AppName+"*.log*"))
}
