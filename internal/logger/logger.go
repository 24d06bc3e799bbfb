package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger writes tagged, timestamped, color-coded lines to stdout and, when
// LOG_FILE is set, plain copies to that file.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

var (
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	debugColor   = color.New(color.FgWhite, color.Faint)
	processColor = color.New(color.FgGreen, color.Bold)
)

func NewLogger() *Logger {
	l := &Logger{}
	if path := os.Getenv("LOG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			l.file = f
		}
	}
	return l
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) write(level string, c *color.Color, tag, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	c.Printf("[%s] %-5s [%s] %s\n", timestamp, level, tag, message)

	if l.file != nil {
		fmt.Fprintf(l.file, "[%s] %-5s [%s] %s\n", timestamp, level, tag, message)
	}
}

func (l *Logger) Info(tag, message string)  { l.write("INFO", infoColor, tag, message) }
func (l *Logger) Warn(tag, message string)  { l.write("WARN", warnColor, tag, message) }
func (l *Logger) Error(tag, message string) { l.write("ERROR", errorColor, tag, message) }
func (l *Logger) Debug(tag, message string) {
	if os.Getenv("LOG_DEBUG") != "" {
		l.write("DEBUG", debugColor, tag, message)
	}
}

func (l *Logger) Fatal(tag, message string) {
	l.write("FATAL", errorColor, tag, message)
	l.Close()
	os.Exit(1)
}

// LogProcess marks a lifecycle step such as startup or shutdown.
func (l *Logger) LogProcess(tag, message string) {
	l.write("PROC", processColor, tag, message)
}

// LogToken traces one token exchange by record or token id.
func (l *Logger) LogToken(action, id, message string) {
	l.write("INFO", infoColor, "TOKEN", fmt.Sprintf("[%s] %s - %s", action, id, message))
}

func (l *Logger) LogKafka(action, topic, message string) {
	l.write("INFO", infoColor, "KAFKA", fmt.Sprintf("[%s] %s - %s", action, topic, message))
}

func (l *Logger) LogDatabase(action, table, message string) {
	l.write("INFO", infoColor, "DB", fmt.Sprintf("[%s] %s - %s", action, table, message))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.write("INFO", infoColor, "API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogSecurity(event, message string) {
	l.write("WARN", warnColor, "SECURITY", fmt.Sprintf("[%s] %s", event, message))
}
