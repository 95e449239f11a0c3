package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"weather-report/config"
	"weather-report/internal/models"
)

type Renderer struct {
	out io.Writer

	green   *color.Color
	blue    *color.Color
	yellow  *color.Color
	cyan    *color.Color
	magenta *color.Color
}

func NewRenderer(out io.Writer, colored bool) *Renderer {
	r := &Renderer{
		out:     out,
		green:   color.New(color.FgGreen),
		blue:    color.New(color.FgBlue),
		yellow:  color.New(color.FgYellow),
		cyan:    color.New(color.FgCyan),
		magenta: color.New(color.FgMagenta),
	}

	for _, c := range []*color.Color{r.green, r.blue, r.yellow, r.cyan, r.magenta} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// ColorEnabled resolves a report.color mode for out.
func ColorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes the report in one piece.
func (r *Renderer) Render(report models.Report) error {
	var b strings.Builder

	globe := r.green.Sprint("🌍")
	fmt.Fprintf(&b, "%s Weather Report %s\n", globe, globe)
	fmt.Fprintf(&b, "%s %s, %s\n", report.Pictogram, r.blue.Sprint(report.City), r.blue.Sprint(report.Country))

	fmt.Fprintf(&b, "\n%s Weather Conditions:\n", r.yellow.Sprint("📊"))
	r.line(&b, "Status", r.yellow.Sprint(report.Status))
	r.line(&b, "Temperature", temperature(report.Temperature))
	r.line(&b, "Feels like", temperature(report.FeelsLike))

	fmt.Fprintf(&b, "\n%s Additional Details:\n", r.cyan.Sprint("🌬️"))
	r.line(&b, "Humidity", fmt.Sprintf("%d%%", report.Humidity))
	r.line(&b, "Wind speed", fmt.Sprintf("%.1f m/s", report.WindSpeed))
	r.line(&b, "Pressure", fmt.Sprintf("%d hPa", report.Pressure))

	fmt.Fprintf(&b, "\n%s Celestial Events:\n", r.magenta.Sprint("🌅"))
	r.line(&b, "Sunrise", report.Sunrise)
	r.line(&b, "Sunset", report.Sunset)

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	return nil
}

func (r *Renderer) line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "   %s: %s\n", r.green.Sprint(label), value)
}

func temperature(t models.Temperature) string {
	return fmt.Sprintf("%.1f°C / %.1f°F", t.Celsius, t.Fahrenheit)
}
