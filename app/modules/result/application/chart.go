package resultservice

import (
	"bytes"
	"fmt"
	"time"

	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of rendered charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is used by PointsChart.
var DefaultPalette = ChartPalette{
	Background:  drawing.Color{R: 0x12, G: 0x1d, B: 0x17, A: 0xff},
	PrimaryLine: drawing.Color{R: 0x3c, G: 0xa3, B: 0x6b, A: 0xff},
	AccentLine:  drawing.Color{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff},
	TextColor:   drawing.Color{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
}

const (
	chartWidth        = 800
	chartHeight       = 400
	placeholderWidth  = 400
	placeholderHeight = 200
)

func renderPointsChart(username string, history []resultdb.PointsOnDate) ([]byte, error) {
	if len(history) == 0 {
		return renderNoDataPlaceholder(DefaultPalette, fmt.Sprintf("No rounds found for %s", username))
	}
	palette := DefaultPalette

	// The series starts at zero the day before the first round so a single
	// round still spans a non-empty x range.
	xValues := make([]time.Time, 0, len(history)+1)
	yValues := make([]float64, 0, len(history)+1)
	xValues = append(xValues, history[0].Date.Add(-24*time.Hour))
	yValues = append(yValues, 0)

	total := 0.0
	for _, h := range history {
		total += h.Points
		xValues = append(xValues, h.Date)
		yValues = append(yValues, total)
	}

	textStyle := chart.Style{FontColor: palette.TextColor}
	graph := chart.Chart{
		Title:      username,
		TitleStyle: textStyle,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis: chart.XAxis{
			Name:           "Date",
			NameStyle:      textStyle,
			Style:          textStyle,
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name:      "Points",
			NameStyle: textStyle,
			Style:     textStyle,
			Range:     &chart.ContinuousRange{Min: 0, Max: max(total, 1)},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Cumulative points",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: palette.PrimaryLine,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    palette.AccentLine,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render points chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderNoDataPlaceholder draws msg centered on a blank canvas. It uses the
// renderer directly because a chart needs at least one series.
func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	r, err := chart.PNG(placeholderWidth, placeholderHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(placeholderWidth, 0)
	r.LineTo(placeholderWidth, placeholderHeight)
	r.LineTo(0, placeholderHeight)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (placeholderWidth-tb.Width())/2, (placeholderHeight+tb.Height())/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
