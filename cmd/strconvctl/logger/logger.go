// Package logger holds the process-wide slog logger used by strconvctl.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It discards all output until Init
// enables it.
var L = slog.New(slog.DiscardHandler)

const (
	logPrefix     = "strconvctl-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Verbose bool       // text records on Stderr at debug level
	LogDir  string     // JSON records to a dated file in this directory
	Level   slog.Level // minimum level for LogDir. Default: LevelInfo
	Stderr  io.Writer  // Default: os.Stderr
}

// Init configures logging. With neither Verbose nor LogDir set all output
// is discarded. LogDir wins when both are set.
func Init(opts Options) error {
	switch {
	case opts.LogDir != "":
		return initFile(opts)
	case opts.Verbose:
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		L = slog.New(slog.DiscardHandler)
	}
	return nil
}

func initFile(opts Options) error {
	if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
		return err
	}

	cleanOldLogs(opts.LogDir, time.Now())

	filename := filepath.Join(opts.LogDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	level := opts.Level
	if level == 0 && opts.Verbose {
		level = slog.LevelDebug
	}
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// cleanOldLogs removes log files dated more than retentionDays before now.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// strconvctl-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}
