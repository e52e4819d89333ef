package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	PrintClassification(&buf, logic.Classification{
		Reading: logic.Reading{Temperature: 25, Humidity: 50},
		Score:   0.182,
		State:   logic.StateNormal,
	})

	out := buf.String()
	for _, want := range []string{
		"temp=25.00C humi=50.00%",
		"[0.500 0.500]",
		"0.182",
		"NORMAL",
		"Normal condition",
		"#00FF00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStateColor(t *testing.T) {
	if StateColor(logic.StateNormal) != colorNormal {
		t.Error("normal should be green")
	}
	if StateColor(logic.StateWarning) != colorWarning {
		t.Error("warning should be yellow")
	}
	if StateColor(logic.StateAnomaly) != colorAnomaly {
		t.Error("anomaly should be red")
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("model: interpreter not ready"))
	if !strings.Contains(buf.String(), "interpreter not ready") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
