// Package logger écrit des logs console horodatés et colorés (codes ANSI).
package logger

import (
	"fmt"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

func emit(color, symbol, message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("%s[%s]%s %s%s%s%s\n",
		colorGray, timestamp, colorReset,
		color, symbol, fmt.Sprintf(message, args...), colorReset)
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	emit(colorBlue, "", message, args...)
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	emit(colorGreen, "✓ ", message, args...)
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	emit(colorYellow, "⚠ ", message, args...)
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	emit(colorRed, "✗ ", message, args...)
}

// Request log une requête HTTP avec son statut et sa durée
func Request(method, path string, statusCode int, duration time.Duration) {
	timestamp := time.Now().Format("15:04:05")

	statusColor := colorRed
	switch {
	case statusCode < 300:
		statusColor = colorGreen
	case statusCode < 400:
		statusColor = colorCyan
	case statusCode < 500:
		statusColor = colorYellow
	}

	fmt.Printf("%s[%s]%s %s%-6s%s %s%-50s%s %s[%d]%s %s(%s)%s\n",
		colorGray, timestamp, colorReset,
		colorPurple, method, colorReset,
		colorWhite, path, colorReset,
		statusColor, statusCode, colorReset,
		colorGray, formatDuration(duration), colorReset)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
