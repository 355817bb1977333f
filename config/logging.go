package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

// LogFilePath returns the path to the backend log file.
func LogFilePath() string {
	return filepath.Join("logs", "dashboard-api.log")
}

// InitLogging prepares the log file and configures logrus output.
func InitLogging() *os.File {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logDir := filepath.Dir(LogFilePath())
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		logrus.Warnf("Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.Warnf("Failed to open log file, logging to stdout only: %v", err)
		LogWriter = os.Stdout
		logrus.SetOutput(LogWriter)
		return nil
	}

	LogWriter = io.MultiWriter(os.Stdout, logFile)
	logrus.SetOutput(LogWriter)
	return logFile
}
