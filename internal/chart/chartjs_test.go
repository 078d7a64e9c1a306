package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/schedviz/internal/models"
)

func TestChartJSConfigGantt(t *testing.T) {
	cfg := ChartJSConfig(Gantt([]models.TimeSlice{
		{PID: 1, Start: 0, Duration: 5, Frequency: 1.2},
		{PID: 2, Start: 5, Duration: 3, Frequency: 2.4},
	}))

	assert.Equal(t, "bar", cfg["type"])
	options := cfg["options"].(map[string]any)
	assert.Equal(t, "y", options["indexAxis"])

	scales := options["scales"].(map[string]any)
	x := scales["x"].(map[string]any)
	assert.Equal(t, "linear", x["type"])
	assert.Equal(t, "top", x["position"])
	assert.Equal(t, "Time (ms)", x["title"].(map[string]any)["text"])

	data := cfg["data"].(map[string]any)
	assert.Equal(t, []string{"P1", "P2"}, data["labels"])

	datasets := data["datasets"].([]map[string]any)
	require.Len(t, datasets, 1)
	assert.Equal(t, []string{"hsl(0, 70%, 60%)", "hsl(180, 70%, 60%)"}, datasets[0]["backgroundColor"])
	assert.Equal(t, 0.8, datasets[0]["barPercentage"])

	points := datasets[0]["data"].([]map[string]any)
	require.Len(t, points, 2)
	assert.Equal(t, []float64{5, 8}, points[1]["x"])
	assert.Equal(t, []string{"Time: 5.00 - 8.00 ms", "Frequency: 2.40 GHz"}, points[1]["tooltip"])
}

func TestChartJSConfigEnergy(t *testing.T) {
	cfg := ChartJSConfig(Energy([]models.EnergySample{{Time: 1, Energy: 2}}))

	assert.Equal(t, "line", cfg["type"])
	ds := cfg["data"].(map[string]any)["datasets"].([]map[string]any)[0]
	assert.Equal(t, "rgb(255, 159, 64)", ds["borderColor"])
	assert.Equal(t, 0.1, ds["tension"])
	assert.Equal(t, []float64{2}, ds["data"])

	y := cfg["options"].(map[string]any)["scales"].(map[string]any)["y"].(map[string]any)
	assert.Equal(t, true, y["beginAtZero"])
}
