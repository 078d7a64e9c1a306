package chart

// ChartJSConfig renders the spec in the configuration shape of the Chart.js
// web charting library. Tooltip text is attached per data point under
// "tooltip" since callbacks cannot travel in JSON.
func ChartJSConfig(spec Spec) map[string]any {
	chartType := string(spec.Kind)
	if spec.Kind == KindHorizontalBar {
		chartType = string(KindBar)
	}

	datasets := make([]map[string]any, 0, len(spec.Datasets))
	for _, ds := range spec.Datasets {
		datasets = append(datasets, chartJSDataset(spec, ds))
	}

	scales := map[string]any{
		"x": chartJSAxis(spec.XAxis),
		"y": chartJSAxis(spec.YAxis),
	}
	if spec.Kind == KindHorizontalBar {
		scales["x"].(map[string]any)["type"] = "linear"
	}

	options := map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"scales":              scales,
		"plugins": map[string]any{
			"title":  map[string]any{"display": spec.Title != "", "text": spec.Title},
			"legend": map[string]any{"display": spec.ShowLegend},
		},
	}
	if spec.Kind == KindHorizontalBar {
		options["indexAxis"] = "y"
	}

	return map[string]any{
		"type": chartType,
		"data": map[string]any{
			"labels":   spec.Labels,
			"datasets": datasets,
		},
		"options": options,
	}
}

func chartJSDataset(spec Spec, ds Dataset) map[string]any {
	out := map[string]any{"label": ds.Label}

	if len(ds.Ranges) > 0 {
		data := make([]map[string]any, len(ds.Ranges))
		for i, r := range ds.Ranges {
			point := map[string]any{"x": []float64{r.Start, r.End}}
			if i < len(spec.Labels) {
				point["y"] = spec.Labels[i]
			}
			if i < len(ds.Tooltips) {
				point["tooltip"] = ds.Tooltips[i]
			}
			data[i] = point
		}
		out["data"] = data
	} else {
		out["data"] = ds.Values
	}

	colors := make([]string, len(ds.Colors))
	for i, c := range ds.Colors {
		colors[i] = CSS(c)
	}
	switch {
	case spec.Kind == KindLine && len(colors) > 0:
		out["borderColor"] = colors[0]
		out["fill"] = false
	case len(colors) == 1:
		out["backgroundColor"] = colors[0]
	case len(colors) > 1:
		out["backgroundColor"] = colors
	}

	if spec.Kind == KindLine {
		out["tension"] = ds.Tension
	}
	if ds.BarPercentage > 0 {
		out["barPercentage"] = ds.BarPercentage
	}
	return out
}

func chartJSAxis(a Axis) map[string]any {
	out := map[string]any{
		"title": map[string]any{"display": a.Title != "", "text": a.Title},
	}
	if a.Position != "" {
		out["position"] = string(a.Position)
	}
	if a.BeginAtZero {
		out["beginAtZero"] = true
	}
	return out
}
