package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	color.Blue("[%s] %s", timestamp(), fmt.Sprintf(message, args...))
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	color.Green("[%s] ✓ %s", timestamp(), fmt.Sprintf(message, args...))
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	color.Yellow("[%s] ⚠ %s", timestamp(), fmt.Sprintf(message, args...))
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	color.Red("[%s] ✗ %s", timestamp(), fmt.Sprintf(message, args...))
}

// Debug log un message de debug (cyan) - utilisé seulement en développement
func Debug(message string, args ...interface{}) {
	color.Cyan("[%s] DEBUG: %s", timestamp(), fmt.Sprintf(message, args...))
}

// Request log une requête HTTP avec son status et sa durée
func Request(method, path string, statusCode int, duration time.Duration) {
	line := fmt.Sprintf("[%s] %-6s %-50s [%d] (%s)",
		timestamp(), method, path, statusCode, formatDuration(duration))

	switch {
	case statusCode >= 500:
		color.Red(line)
	case statusCode >= 400:
		color.Yellow(line)
	case statusCode >= 300:
		color.Cyan(line)
	default:
		color.Green(line)
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration arrondit la durée à l'unité lisible la plus proche
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.0fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Milliseconds()))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
