package chart

// Panel identifies one chart area of the dashboard.
type Panel int

const (
	PanelGantt Panel = iota
	PanelFrequencyHistogram
	PanelEnergy
	PanelFrequencyDistribution
)

var allPanels = []Panel{
	PanelGantt,
	PanelFrequencyHistogram,
	PanelEnergy,
	PanelFrequencyDistribution,
}

// Panels returns every panel in render order.
func Panels() []Panel {
	out := make([]Panel, len(allPanels))
	copy(out, allPanels)
	return out
}

// MountIDs returns the surface id of every panel in render order.
func MountIDs() []string {
	ids := make([]string, len(allPanels))
	for i, p := range allPanels {
		ids[i] = p.MountID()
	}
	return ids
}

// MountID is the id of the surface the panel is drawn on.
func (p Panel) MountID() string {
	switch p {
	case PanelGantt:
		return "ganttChart"
	case PanelFrequencyHistogram:
		return "frequencyDistChart"
	case PanelEnergy:
		return "energyChart"
	case PanelFrequencyDistribution:
		return "frequencyCdfChart"
	}
	return ""
}

func (p Panel) String() string {
	switch p {
	case PanelGantt:
		return "gantt"
	case PanelFrequencyHistogram:
		return "frequency-histogram"
	case PanelEnergy:
		return "energy"
	case PanelFrequencyDistribution:
		return "frequency-distribution"
	}
	return "unknown"
}
