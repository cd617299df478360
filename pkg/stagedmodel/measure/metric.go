package measure

import (
	"time"
)

type DefaultMetric struct {
	stageElapsed      time.Duration
	checkpointElapsed time.Duration
	total             int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.total++
	mt.stageElapsed += elapsed
}

func (mt *DefaultMetric) AddCheckpointDuration(elapsed time.Duration) {
	mt.checkpointElapsed += elapsed
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stageElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) AVGCheckpointDuration() time.Duration {
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.checkpointElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) Runs() int64 {
	return mt.total
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
