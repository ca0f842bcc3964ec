// Package logger arma el logger estructurado de la aplicación sobre
// zerolog: consola legible en desarrollo, JSON a nivel info en cualquier
// otro entorno.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger envuelve zerolog para inyectarlo por constructor.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger según el entorno. En "development" escribe consola
// legible con nivel debug; en el resto, JSON con nivel info.
func New(env string) *Logger {
	var w io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()

	// Redirigir el logger global de zerolog para librerías que lo usen
	log.Logger = zl

	return &Logger{zl: zl}
}

// Debug, Info, Warn, Error, Fatal delegados a zerolog.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
