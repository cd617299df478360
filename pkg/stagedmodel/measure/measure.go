package measure

type DefaultMeasure struct {
	Stages map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Stages: make(map[string]Metric),
	}
}

// AddMetric registers a metric for the stage, keeping the existing one when the stage already has a metric.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	if mt, ok := m.Stages[name]; ok {
		return mt
	}

	mt := &DefaultMetric{}
	m.Stages[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	return m.Stages[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	return m.Stages
}

var _ Measure = (*DefaultMeasure)(nil)
