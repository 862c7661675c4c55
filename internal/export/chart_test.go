package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/SheetYield/internal/model"
)

func TestExportChart_RendersHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportChart(&buf, buildTestPlan(t)); err != nil {
		t.Fatalf("ExportChart returned error: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Demand and production", "Material use", "Side Panel", "Shelf"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart output missing %q", want)
		}
	}
}

func TestExportChart_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportChart(&buf, model.ProductionPlan{}); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}

func TestExportChartFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	if err := ExportChartFile(path, buildTestPlan(t)); err != nil {
		t.Fatalf("ExportChartFile returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}
