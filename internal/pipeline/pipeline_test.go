package pipeline_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/tube-commuters/internal/adapter/csvfile"
	"github.com/couchcryptid/tube-commuters/internal/chart"
	"github.com/couchcryptid/tube-commuters/internal/domain"
	"github.com/couchcryptid/tube-commuters/internal/observability"
	"github.com/couchcryptid/tube-commuters/internal/pipeline"
	"github.com/couchcryptid/tube-commuters/internal/selection"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "16 November 2017"

// --- mocks ---

type mockRenderer struct {
	charts []chart.Chart
	err    error
}

func (m *mockRenderer) Render(c chart.Chart) error {
	m.charts = append(m.charts, c)
	return m.err
}

// --- helpers ---

// stationTotals are the per-slice counts; totals are 96x these.
var stationTotals = map[string]int{
	"Acton Town": 50, "Bank": 80, "Kings Cross": 10,
	"Moorgate": 99, "Oval": 30, "Angel": 70,
}

var stationOrder = []string{"Acton Town", "Bank", "Kings Cross", "Moorgate", "Oval", "Angel"}

func writeDataset(t *testing.T) string {
	t.Helper()
	stations := make([]csvfile.RawStation, 0, len(stationOrder))
	for _, name := range stationOrder {
		counts := make([]int, 96)
		for j := range counts {
			counts[j] = stationTotals[name]
		}
		stations = append(stations, csvfile.RawStation{Name: name, Counts: counts})
	}

	var buf bytes.Buffer
	require.NoError(t, csvfile.WriteRaw(&buf, domain.DefaultLayout(), stations))
	path := filepath.Join(t.TempDir(), "counts.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

type harness struct {
	pipeline *pipeline.Pipeline
	renderer *mockRenderer
	metrics  *observability.Metrics
	out      *bytes.Buffer
}

func newHarness(input string) *harness {
	h := &harness{
		renderer: &mockRenderer{},
		metrics:  observability.NewMetricsForTesting(),
		out:      &bytes.Buffer{},
	}
	console := selection.NewConsole(strings.NewReader(input), h.out)
	console.OnEffect = pipeline.ObserveSelection(h.metrics)
	h.pipeline = pipeline.New(
		csvfile.NewDataset(domain.DefaultLayout()),
		console,
		h.renderer,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		h.metrics,
		clockwork.NewFakeClock(),
		testDate,
	)
	return h
}

// --- tests ---

func TestPipeline_Run_ManualSelection(t *testing.T) {
	h := newHarness("n\nbank\nmoorgate\ndone\n")

	res, err := h.pipeline.Run(writeDataset(t))
	require.NoError(t, err)

	assert.Equal(t, pipeline.ModeManual, res.Mode)
	assert.Equal(t, []string{"Bank", "Moorgate"}, res.Stations)
	assert.Equal(t, "Difference in commutes between Bank and Moorgate on "+testDate, res.Title)

	require.Len(t, h.renderer.charts, 1)
	c := h.renderer.charts[0]
	require.Len(t, c.Series, 2)
	require.NotNil(t, c.Fill)
	assert.Equal(t, "red", c.Series[0].Color)
	assert.Equal(t, 80, c.Series[0].Values[0])
	assert.Len(t, c.XLabels, 96)
	assert.Equal(t, "0500", c.XLabels[0])

	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.SelectionInputs.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.SelectionMode.WithLabelValues(pipeline.ModeManual)))
	assert.Equal(t, 7.0, testutil.ToFloat64(h.metrics.RowsParsed))
	assert.Equal(t, 6.0, testutil.ToFloat64(h.metrics.StationsCatalogued))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.NormalizeRuns.WithLabelValues("rewritten")))
}

func TestPipeline_Run_Busiest(t *testing.T) {
	h := newHarness("n\nbank\nbusiest 5\n")

	res, err := h.pipeline.Run(writeDataset(t))
	require.NoError(t, err)

	assert.Equal(t, pipeline.ModeRanked, res.Mode)
	assert.Equal(t, []string{"Moorgate", "Bank", "Angel", "Acton Town", "Oval"}, res.Stations)
	assert.Equal(t, domain.BusiestTitle+" on "+testDate, res.Title)
	require.Len(t, h.renderer.charts, 1)
	assert.Nil(t, h.renderer.charts[0].Fill)
	assert.Equal(t, 99, h.renderer.charts[0].Series[0].Values[95])
}

func TestPipeline_Run_DoneWithNothingMatchesBusiest(t *testing.T) {
	path := writeDataset(t)

	done, err := newHarness("n\ndone\n").pipeline.Run(path)
	require.NoError(t, err)
	busiest, err := newHarness("n\nbusiest 5\n").pipeline.Run(path)
	require.NoError(t, err)

	assert.Equal(t, busiest, done)
}

func TestPipeline_Run_SecondRunSkipsNormalize(t *testing.T) {
	path := writeDataset(t)
	_, err := newHarness("n\nbank\ndone\n").pipeline.Run(path)
	require.NoError(t, err)

	h := newHarness("n\nbank\ndone\n")
	res, err := h.pipeline.Run(path)
	require.NoError(t, err)

	assert.Equal(t, "Commutes shown for Bank on "+testDate, res.Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.NormalizeRuns.WithLabelValues("skipped")))
}

func TestPipeline_Run_ShowsStationList(t *testing.T) {
	h := newHarness("y\ndone\n")

	_, err := h.pipeline.Run(writeDataset(t))
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "-Acton Town\n-Bank\n")
	assert.NotContains(t, h.out.String(), "-All Stations")
}

func TestPipeline_Run_FileNotFound(t *testing.T) {
	h := newHarness("")

	_, err := h.pipeline.Run(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvfile.ErrFileNotFound))
	assert.Empty(t, h.renderer.charts)
}

func TestPipeline_Run_StructureError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("(C)\nTotal\nnlc,Station\n500,Bank,1\nTotal,All\n"), 0o600))
	h := newHarness("")

	_, err := h.pipeline.Run(path)

	var se *csvfile.StructureError
	require.True(t, errors.As(err, &se))
	assert.Empty(t, h.renderer.charts)
}

func TestPipeline_Run_NoStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("(C)\nTotal\nnlc,Station\n"), 0o600))

	_, err := newHarness("").pipeline.Run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stations")
}

func TestPipeline_Run_RenderError(t *testing.T) {
	h := newHarness("n\ndone\n")
	h.renderer.err = errors.New("display unavailable")

	_, err := h.pipeline.Run(writeDataset(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display unavailable")
}
