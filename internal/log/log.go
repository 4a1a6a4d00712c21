package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger

	globalLogFile io.Closer
)

// LogConfig holds logging configuration
type LogConfig struct {
	LogsEnabled bool
	LogsDir     string
	LogMaxSize  int // megabytes; zero disables rotation
	LogMaxFiles int
	LogMaxAge   int // days
	LogCompress bool
}

// DefaultLogConfig returns the default logging configuration
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		LogsEnabled: true,
		LogMaxSize:  5,
		LogMaxFiles: 3,
		LogMaxAge:   14,
		LogCompress: true,
	}
}

const logBaseName = "travelbrowser.log"

// Fallback used when the home directory cannot be resolved.
var logFileName = filepath.Join(os.TempDir(), logBaseName)

func init() {
	// Loggers must be usable before Initialize, e.g. from tests.
	InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// GetConfigDir returns the path to the application's state directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".travelbrowser"), nil
}

// GetLogDir returns the directory where logs should be stored
func GetLogDir(cfg *LogConfig) (string, error) {
	if cfg != nil && !cfg.LogsEnabled {
		return os.TempDir(), nil
	}
	if cfg != nil && cfg.LogsDir != "" {
		return cfg.LogsDir, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return os.TempDir(), fmt.Errorf("failed to get config directory: %w", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return os.TempDir(), fmt.Errorf("failed to create log directory: %w", err)
	}
	return logDir, nil
}

// GetLogFilePath returns the full path to the log file
func GetLogFilePath(cfg *LogConfig) (string, error) {
	logDir, err := GetLogDir(cfg)
	if err != nil {
		return logFileName, err
	}
	return filepath.Join(logDir, logBaseName), nil
}

func createRotatingWriter(logFilePath string, cfg *LogConfig) (io.Writer, error) {
	if cfg == nil || cfg.LogMaxSize <= 0 {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		return f, nil
	}

	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxFiles,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
		LocalTime:  true,
	}, nil
}

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. The prefix tags every line, e.g. "[MCP] "
// when running as a tool server.
func Initialize(cfg *LogConfig, prefix string) error {
	if cfg == nil {
		cfg = DefaultLogConfig()
	}
	logFilePath, err := GetLogFilePath(cfg)
	if err != nil {
		logFilePath = logFileName
	}

	writer, err := createRotatingWriter(logFilePath, cfg)
	if err != nil {
		return err
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(writer)

	InfoLog = log.New(writer, prefix+"INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(writer, prefix+"WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(writer, prefix+"ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	if closer, ok := writer.(io.Closer); ok {
		globalLogFile = closer
	}
	logFileName = logFilePath
	return nil
}

// Close flushes the log file and returns its path.
func Close() string {
	if globalLogFile != nil {
		_ = globalLogFile.Close()
		globalLogFile = nil
	}
	return logFileName
}

// Every is used to log at most once every timeout duration.
type Every struct {
	timeout time.Duration
	timer   *time.Timer
}

func NewEvery(timeout time.Duration) *Every {
	return &Every{timeout: timeout}
}

// ShouldLog returns true if the timeout has passed since the last log.
func (e *Every) ShouldLog() bool {
	if e.timer == nil {
		e.timer = time.NewTimer(e.timeout)
		return true
	}

	select {
	case <-e.timer.C:
		e.timer.Reset(e.timeout)
		return true
	default:
		return false
	}
}
