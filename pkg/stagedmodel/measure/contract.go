package measure

import "time"

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDuration(elapsed time.Duration)
	AddCheckpointDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	AVGCheckpointDuration() time.Duration
	Runs() int64
}
