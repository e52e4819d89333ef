// Package ui renders classifications for terminal output.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

var (
	colorNormal  = color.New(color.FgHiGreen, color.Bold)
	colorWarning = color.New(color.FgHiYellow, color.Bold)
	colorAnomaly = color.New(color.FgHiRed, color.Bold)
	colorKey     = color.New(color.FgHiCyan)
	colorMuted   = color.New(color.FgHiBlack)
)

// StateColor returns the terminal color matching the indicator color for s.
func StateColor(s logic.State) *color.Color {
	switch s {
	case logic.StateNormal:
		return colorNormal
	case logic.StateWarning:
		return colorWarning
	default:
		return colorAnomaly
	}
}

// PrintClassification writes a short report of c to w.
func PrintClassification(w io.Writer, c logic.Classification) {
	x := logic.Normalize(c.Reading)

	colorKey.Fprint(w, "reading   ")
	fmt.Fprintf(w, "temp=%.2fC humi=%.2f%%\n", c.Reading.Temperature, c.Reading.Humidity)
	colorKey.Fprint(w, "input     ")
	fmt.Fprintf(w, "[%.3f %.3f]\n", x[0], x[1])
	colorKey.Fprint(w, "score     ")
	fmt.Fprintf(w, "%.3f\n", c.Score)
	colorKey.Fprint(w, "state     ")
	StateColor(c.State).Fprintf(w, "%s", c.State)
	colorMuted.Fprintf(w, "  %s %s\n", logic.Label(c.State), logic.ColorFor(c.State).Hex())
}

// PrintError writes a failed cycle report to w.
func PrintError(w io.Writer, err error) {
	colorAnomaly.Fprint(w, "error     ")
	fmt.Fprintln(w, err)
}
