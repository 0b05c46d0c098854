package csvfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/tube-commuters/internal/domain"
	"github.com/stretchr/testify/require"
)

// testStations returns n stations whose slice j of station i holds i*100+j.
func testStations(n int) []RawStation {
	names := []string{"Acton Town", "Bank", "Kings Cross", "Moorgate", "Oval", "Angel", "Brixton"}
	stations := make([]RawStation, n)
	for i := range stations {
		counts := make([]int, 96)
		for j := range counts {
			counts[j] = i*100 + j
		}
		stations[i] = RawStation{Name: names[i%len(names)], Borough: "Camden", Counts: counts}
	}
	return stations
}

// writeRawFile writes a raw export of n stations to a temp file.
func writeRawFile(t *testing.T, n int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, domain.DefaultLayout(), testStations(n)))

	path := filepath.Join(t.TempDir(), "counts.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}
