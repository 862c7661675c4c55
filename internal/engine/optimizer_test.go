package engine

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestSettings() model.PlanSettings {
	return model.DefaultSettings()
}

func fig(w, h float64, n int) model.Figure {
	return model.Figure{Width: w, Height: h, Necessary: n}
}

// assertValidLayout checks containment, non-overlap and area bookkeeping.
func assertValidLayout(t *testing.T, sr model.SheetResult) {
	t.Helper()
	usable := sr.Sheet.Usable()

	var used float64
	for i, p := range sr.Placements {
		fp := p.Footprint()
		assert.True(t, usable.Contains(fp), "placement %d %+v outside usable %+v", i, fp, usable)
		for j := i + 1; j < len(sr.Placements); j++ {
			assert.False(t, fp.Overlaps(sr.Placements[j].Footprint()), "placements %d and %d overlap", i, j)
		}
		for _, fr := range sr.FreeRects {
			assert.False(t, fp.Overlaps(fr), "placement %d overlaps free rect %+v", i, fr)
		}
		used += fp.Area()
	}
	assert.InDelta(t, used, sr.UsedArea, 1e-6)

	var free float64
	for _, fr := range sr.FreeRects {
		free += fr.Area()
	}
	assert.InDelta(t, usable.Area(), used+free, 1e-3, "placements and free leaves must tile the usable area")

	assert.GreaterOrEqual(t, sr.Efficiency, 0.0)
	assert.LessOrEqual(t, sr.Efficiency, 1.0)
}

func TestPackSheet_GridOfSquares(t *testing.T) {
	opt := New(defaultTestSettings())
	sr, err := opt.PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(30, 30, 20)})
	require.NoError(t, err)

	assert.Len(t, sr.Placements, 9)
	assert.Equal(t, 9, sr.Counts["30x30"])
	assert.Equal(t, 11, sr.Unmet["30x30"])
	assert.InDelta(t, 8100.0, sr.UsedArea, 1e-9)
	assert.InDelta(t, 0.81, sr.Efficiency, 1e-9)
	assertValidLayout(t, sr)

	for _, p := range sr.Placements {
		assert.False(t, p.Rotated)
		assert.Equal(t, "30x30", p.Key)
	}
	assert.Equal(t, 0.0, sr.Placements[0].X)
	assert.Equal(t, 0.0, sr.Placements[0].Y)
}

func TestPackSheet_UnrotatedTriedFirst(t *testing.T) {
	opt := New(defaultTestSettings())
	f := model.Figure{Width: 3, Height: 4, Necessary: 1, Rotation: true}

	sr, err := opt.PackSheet(model.NewSheet(10, 10, 0), []model.Figure{f})
	require.NoError(t, err)

	require.Len(t, sr.Placements, 1)
	p := sr.Placements[0]
	assert.False(t, p.Rotated)
	assert.Equal(t, 3.0, p.Figure.Width)
	assert.Equal(t, 4.0, p.Figure.Height)
	assert.Equal(t, 0, sr.Unmet["3x4"])
}

func TestPackSheet_RotatesWhenOnlyRotatedFits(t *testing.T) {
	opt := New(defaultTestSettings())
	f := model.Figure{Width: 10, Height: 60, Necessary: 10, Rotation: true}

	sr, err := opt.PackSheet(model.NewSheet(100, 50, 0), []model.Figure{f})
	require.NoError(t, err)

	assert.Equal(t, 5, sr.Counts["10x60"])
	assert.Equal(t, 5, sr.Unmet["10x60"])
	for _, p := range sr.Placements {
		assert.True(t, p.Rotated)
		assert.Equal(t, 60.0, p.Figure.Width)
		assert.Equal(t, 10.0, p.Figure.Height)
		assert.Equal(t, "10x60", p.Key, "key stays that of the declared figure")
	}
	assertValidLayout(t, sr)
}

func TestPackSheet_NoRotationWithoutPermission(t *testing.T) {
	opt := New(defaultTestSettings())
	sr, err := opt.PackSheet(model.NewSheet(100, 50, 0), []model.Figure{fig(10, 60, 3)})
	require.NoError(t, err)

	assert.Empty(t, sr.Placements)
	assert.Equal(t, 3, sr.Unmet["10x60"])
	assert.Equal(t, []string{"10x60"}, sr.Unplaceable())
}

func TestPackSheet_UnplaceableType(t *testing.T) {
	opt := New(defaultTestSettings())
	figures := []model.Figure{
		{Width: 120, Height: 10, Necessary: 4, Rotation: true},
		fig(30, 30, 2),
	}

	sr, err := opt.PackSheet(model.NewSheet(100, 100, 0), figures)
	require.NoError(t, err)

	assert.Equal(t, 0, sr.Counts["120x10"])
	assert.Equal(t, 4, sr.Unmet["120x10"])
	assert.Equal(t, 2, sr.Counts["30x30"])
	assert.Equal(t, []string{"120x10"}, sr.Unplaceable())
	assertValidLayout(t, sr)
}

func TestPackSheet_Margins(t *testing.T) {
	opt := New(defaultTestSettings())
	f := model.Figure{Width: 38, Height: 38, Margin: 1, Necessary: 5}

	sr, err := opt.PackSheet(model.NewSheet(100, 100, 10), []model.Figure{f})
	require.NoError(t, err)

	assert.Equal(t, 4, sr.Counts["38x38"])
	assert.InDelta(t, 0.64, sr.Efficiency, 1e-9, "efficiency is over the gross sheet area")
	assert.InDelta(t, 1.0, sr.UsableEfficiency(), 1e-9)
	assert.Empty(t, sr.FreeRects)
	assertValidLayout(t, sr)

	first := sr.Placements[0]
	assert.Equal(t, 10.0, first.X)
	assert.Equal(t, 10.0, first.Y)
	assert.Equal(t, model.Rect{X: 11, Y: 11, Width: 38, Height: 38}, first.Product())
}

func TestPackSheet_SortByAreaIsStable(t *testing.T) {
	opt := New(defaultTestSettings())
	figures := []model.Figure{
		{Label: "small", Width: 10, Height: 10, Necessary: 1},
		{Label: "wide", Width: 40, Height: 10, Necessary: 1},
		{Label: "tall", Width: 10, Height: 40, Necessary: 1},
	}

	sr, err := opt.PackSheet(model.NewSheet(100, 100, 0), figures)
	require.NoError(t, err)
	require.Len(t, sr.Placements, 3)

	assert.Equal(t, "wide", sr.Placements[0].Key)
	assert.Equal(t, "tall", sr.Placements[1].Key)
	assert.Equal(t, "small", sr.Placements[2].Key)
}

func TestPackSheet_SortInputOrder(t *testing.T) {
	settings := defaultTestSettings()
	settings.Order = model.SortInput
	figures := []model.Figure{
		{Label: "small", Width: 10, Height: 10, Necessary: 1},
		{Label: "large", Width: 50, Height: 50, Necessary: 1},
	}

	sr, err := New(settings).PackSheet(model.NewSheet(100, 100, 0), figures)
	require.NoError(t, err)
	require.Len(t, sr.Placements, 2)
	assert.Equal(t, "small", sr.Placements[0].Key)
}

func TestPackSheet_OtherSortOrders(t *testing.T) {
	figures := []model.Figure{
		{Label: "square", Width: 30, Height: 30, Necessary: 1}, // area 900, perimeter 120
		{Label: "strip", Width: 80, Height: 5, Necessary: 1},   // area 400, perimeter 170
	}

	for _, order := range []model.SortOrder{model.SortPerimeter, model.SortLongestSide} {
		settings := defaultTestSettings()
		settings.Order = order
		sr, err := New(settings).PackSheet(model.NewSheet(100, 100, 0), figures)
		require.NoError(t, err)
		require.Len(t, sr.Placements, 2)
		assert.Equal(t, "strip", sr.Placements[0].Key, "order %s", order)
	}
}

func TestPackSheet_ZeroDemand(t *testing.T) {
	sr, err := New(defaultTestSettings()).PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(10, 10, 0)})
	require.NoError(t, err)

	assert.Empty(t, sr.Placements)
	assert.Equal(t, 0, sr.Counts["10x10"])
	assert.Equal(t, 0, sr.Unmet["10x10"])
	assert.Empty(t, sr.Unplaceable())
	assert.Equal(t, 0.0, sr.Efficiency)
}

func TestPackSheet_RejectsInvalidInput(t *testing.T) {
	opt := New(defaultTestSettings())

	_, err := opt.PackSheet(model.NewSheet(100, 100, 50), []model.Figure{fig(10, 10, 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = opt.PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(-1, 10, 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = opt.PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(10, 10, -1)})
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	_, err = opt.PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(10, 10, 1), fig(10, 10, 2)})
	assert.ErrorIs(t, err, model.ErrDuplicateFigure)
}

func TestPackSheet_RejectsNonFiniteDimensions(t *testing.T) {
	opt := New(defaultTestSettings())

	sr, err := opt.PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(math.NaN(), 10, 3)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
	assert.Empty(t, sr.Placements)

	_, err = opt.PackSheet(model.NewSheet(math.Inf(1), 100, 0), []model.Figure{fig(10, 10, 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = opt.Plan(model.NewSheet(100, 100, 0), []model.Figure{fig(10, math.Inf(1), 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
}

func TestPackSheet_RecordsCuts(t *testing.T) {
	sr, err := New(defaultTestSettings()).PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(30, 30, 1)})
	require.NoError(t, err)

	require.Len(t, sr.Cuts, 2)
	assert.Equal(t, model.CutVertical, sr.Cuts[0].Orientation)
	assert.Equal(t, 30.0, sr.Cuts[0].X)
	assert.Equal(t, model.CutHorizontal, sr.Cuts[1].Orientation)
	assert.Equal(t, 30.0, sr.Cuts[1].Y)
	assert.Len(t, sr.FreeRects, 2)
}

func TestPackSheet_Deterministic(t *testing.T) {
	figures := []model.Figure{
		{Width: 23, Height: 17, Necessary: 12, Rotation: true},
		{Width: 41, Height: 9, Necessary: 7, Rotation: true},
		{Width: 15, Height: 15, Necessary: 9},
	}
	sheet := model.NewSheet(120, 90, 2)

	a, err := New(defaultTestSettings()).PackSheet(sheet, figures)
	require.NoError(t, err)
	b, err := New(defaultTestSettings()).PackSheet(sheet, figures)
	require.NoError(t, err)

	assert.Equal(t, a.Placements, b.Placements)
	assert.Equal(t, a.Cuts, b.Cuts)
}

func TestPackSheet_DoesNotReorderInput(t *testing.T) {
	figures := []model.Figure{fig(10, 10, 1), fig(50, 50, 1)}
	sr, err := New(defaultTestSettings()).PackSheet(model.NewSheet(100, 100, 0), figures)
	require.NoError(t, err)

	assert.Equal(t, 10.0, figures[0].Width)
	assert.Equal(t, "10x10", sr.Figures[0].Key())
}

func TestPackSheet_RandomLayoutsAreValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	opt := New(defaultTestSettings())

	for run := 0; run < 50; run++ {
		sheet := model.NewSheet(float64(50+rng.Intn(200)), float64(50+rng.Intn(200)), float64(rng.Intn(5)))

		n := 1 + rng.Intn(5)
		var figures []model.Figure
		for i := 0; i < n; i++ {
			figures = append(figures, model.Figure{
				Label:     string(rune('A' + i)),
				Width:     float64(3 + rng.Intn(60)),
				Height:    float64(3 + rng.Intn(60)),
				Necessary: rng.Intn(30),
				Rotation:  rng.Intn(2) == 0,
				Margin:    float64(rng.Intn(3)),
			})
		}

		sr, err := opt.PackSheet(sheet, figures)
		require.NoError(t, err)
		assertValidLayout(t, sr)

		for _, f := range figures {
			assert.Equal(t, f.Necessary, sr.Counts[f.Key()]+sr.Unmet[f.Key()])
		}
	}
}

func TestPackSheet_LogsPerType(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(defaultTestSettings()).WithLogger(logger).
		PackSheet(model.NewSheet(100, 100, 0), []model.Figure{fig(30, 30, 20)})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "packed figure type")
	assert.Contains(t, buf.String(), "figure=30x30")
	assert.Contains(t, buf.String(), "placed=9")
}
