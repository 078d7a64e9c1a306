package render

import "github.com/user/schedviz/internal/chart"

// PanelSet owns at most one chart instance per panel. A present slot means the
// instance exists and must be released before the panel is drawn again.
type PanelSet struct {
	slots map[chart.Panel]chart.Instance
}

func NewPanelSet() *PanelSet {
	return &PanelSet{slots: make(map[chart.Panel]chart.Instance)}
}

// Replace releases the current instance of the panel, if any, and stores inst.
func (ps *PanelSet) Replace(panel chart.Panel, inst chart.Instance) {
	ps.Clear(panel)
	if inst != nil {
		ps.slots[panel] = inst
	}
}

// Clear releases the current instance of the panel, if any.
func (ps *PanelSet) Clear(panel chart.Panel) {
	if inst, ok := ps.slots[panel]; ok {
		inst.Destroy()
		delete(ps.slots, panel)
	}
}

// ClearAll releases every instance.
func (ps *PanelSet) ClearAll() {
	for panel := range ps.slots {
		ps.Clear(panel)
	}
}

// Instance returns the live instance of the panel.
func (ps *PanelSet) Instance(panel chart.Panel) (chart.Instance, bool) {
	inst, ok := ps.slots[panel]
	return inst, ok
}

// Len is the number of live instances.
func (ps *PanelSet) Len() int {
	return len(ps.slots)
}
