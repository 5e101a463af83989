package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spboyer/cgpa/internal/gradetable"
	"github.com/spboyer/cgpa/internal/models"
)

// WriteChart renders a PNG line chart of semester GPA and running CGPA.
// Two series: Semester GPA (gray dashed) and CGPA (blue solid).
func WriteChart(w io.Writer, r *models.Report) error {
	if len(r.Trend) < 2 {
		return fmt.Errorf("need at least 2 semesters to chart, got %d", len(r.Trend))
	}

	xValues := make([]float64, len(r.Trend))
	gpaY := make([]float64, len(r.Trend))
	cgpaY := make([]float64, len(r.Trend))
	for i, p := range r.Trend {
		xValues[i] = float64(p.Semester)
		gpaY[i] = p.GPA
		cgpaY[i] = p.CGPA
	}

	gpaSeries := chart.ContinuousSeries{
		Name: "Semester GPA",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
			DotColor:        drawing.ColorFromHex("9ca3af"),
			DotWidth:        3,
		},
		XValues: xValues,
		YValues: gpaY,
	}

	cgpaSeries := chart.ContinuousSeries{
		Name: "CGPA",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
			DotColor:    drawing.ColorFromHex("2563eb"),
			DotWidth:    4,
		},
		XValues: xValues,
		YValues: cgpaY,
	}

	ticks := make([]chart.Tick, len(xValues))
	for i, x := range xValues {
		ticks[i] = chart.Tick{Value: x, Label: fmt.Sprintf("Sem %d", int(x))}
	}

	graph := chart.Chart{
		Title:  "CGPA Trend",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: gradetable.MaxPoints},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			gpaSeries,
			cgpaSeries,
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
