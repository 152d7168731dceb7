package metrics

import (
	"time"

	"github.com/samber/do/v2"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}

func NewRecorder(_ do.Injector) (Recorder, error) {
	return NewPrometheusRecorder(), nil
}
