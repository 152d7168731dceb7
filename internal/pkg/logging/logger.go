package logging

import "github.com/samber/do/v2"

type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}

func NewLogger(i do.Injector) (Logger, error) {
	level := do.MustInvokeNamed[string](i, "log-level")

	return NewZapLogger(level), nil
}
