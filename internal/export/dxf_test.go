package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_LineCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	layout := buildTestPlan(t).Layout

	if err := ExportDXF(path, layout); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen drawing: %v", err)
	}
	lines := 0
	for _, e := range d.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}

	// Sheet outline, four edges per placement, one line per cut.
	want := 4 + 4*len(layout.Placements) + len(layout.Cuts)
	if lines != want {
		t.Errorf("expected %d lines, got %d", want, lines)
	}
}

func TestExportDXF_InvalidSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dxf")
	err := ExportDXF(path, model.SheetResult{})
	if !errors.Is(err, model.ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
}
