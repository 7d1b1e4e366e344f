package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"weather-report/internal/forecast"
)

// Renderer draws the two-panel weather report image: temperature over time
// on top, humidity vs wind speed below.
type Renderer struct {
	PanelWidth  int
	PanelHeight int
}

func NewRenderer(panelWidth, panelHeight int) *Renderer {
	if panelWidth <= 0 {
		panelWidth = 1200
	}
	if panelHeight <= 0 {
		panelHeight = 400
	}
	return &Renderer{
		PanelWidth:  panelWidth,
		PanelHeight: panelHeight,
	}
}

// Render writes the report PNG to path, overwriting any existing file.
func (r *Renderer) Render(set forecast.Set, path string) error {
	if len(set.Records) == 0 {
		return fmt.Errorf("cannot render report: forecast set contains no records")
	}

	temperature, err := r.renderPanel(r.temperaturePanel(set))
	if err != nil {
		return fmt.Errorf("temperature panel: %w", err)
	}

	scatter, err := r.renderPanel(r.humidityWindPanel(set))
	if err != nil {
		return fmt.Errorf("humidity/wind panel: %w", err)
	}

	combined := stackPanels(temperature, scatter)

	// Encode into a temp file and rename, so a failed encode never leaves
	// a partial image at path.
	f, err := os.CreateTemp(filepath.Dir(path), ".weather-report-*.png")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	tmp := f.Name()

	if err := png.Encode(f, combined); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode report image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write report image: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write report image: %w", err)
	}

	return nil
}

func (r *Renderer) temperaturePanel(set forecast.Set) chart.Chart {
	times := make([]time.Time, 0, len(set.Records))
	temps := make([]float64, 0, len(set.Records))
	for _, rec := range set.Records {
		times = append(times, rec.Timestamp)
		temps = append(temps, rec.Temperature)
	}

	return chart.Chart{
		Title:  "Temperature Over Time",
		Width:  r.PanelWidth,
		Height: r.PanelHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date/Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{
			Name: "Temperature (°C)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "temperature",
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
				XValues: times,
				YValues: temps,
			},
		},
	}
}

func (r *Renderer) humidityWindPanel(set forecast.Set) chart.Chart {
	humidity := make([]float64, 0, len(set.Records))
	wind := make([]float64, 0, len(set.Records))
	for _, rec := range set.Records {
		humidity = append(humidity, rec.Humidity)
		wind = append(wind, rec.WindSpeed)
	}

	return chart.Chart{
		Title:  "Humidity vs Wind Speed",
		Width:  r.PanelWidth,
		Height: r.PanelHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: "Humidity (%)",
		},
		YAxis: chart.YAxis{
			Name: "Wind Speed (m/s)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "measurements",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorAlternateGreen,
				},
				XValues: humidity,
				YValues: wind,
			},
		},
	}
}

func (r *Renderer) renderPanel(graph chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// stackPanels combines the rendered panels into one vertically stacked image.
// go-chart renders a single chart per image, so the composition happens here.
func stackPanels(top, bottom image.Image) image.Image {
	tb := top.Bounds()
	bb := bottom.Bounds()

	width := tb.Dx()
	if bb.Dx() > width {
		width = bb.Dx()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, tb.Dy()+bb.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, tb.Dx(), tb.Dy()), top, tb.Min, draw.Src)
	draw.Draw(out, image.Rect(0, tb.Dy(), bb.Dx(), tb.Dy()+bb.Dy()), bottom, bb.Min, draw.Src)
	return out
}
