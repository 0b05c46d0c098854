package csvfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/tube-commuters/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RawStation is one station to write into a raw export.
type RawStation struct {
	Name    string
	Borough string
	Counts  []int
}

// Total is the sum of the station's slice counts.
func (s RawStation) Total() int {
	sum := 0
	for _, v := range s.Counts {
		sum += v
	}
	return sum
}

// WriteRaw writes stations as an un-normalized export in the given layout:
// a section marker line, the copyright line, a total line with thousands
// separators, the header, a separator line, the station rows and a footer.
// Normalizing the output with layout.Normalize yields a parsable file when
// the layout's comma-strip lines are 3 and 5.
func WriteRaw(w io.Writer, layout domain.Layout, stations []RawStation) error {
	c := layout.Columns
	width := c.MinFields()
	bw := bufio.NewWriter(w)
	p := message.NewPrinter(language.BritishEnglish)

	grand := 0
	for _, s := range stations {
		if len(s.Counts) != c.SliceCount() {
			return fmt.Errorf("write raw: station %q has %d counts, layout needs %d", s.Name, len(s.Counts), c.SliceCount())
		}
		grand += s.Total()
	}

	pad := func(s string) string { return s + ",,,," }
	fmt.Fprintln(bw, pad(layout.Normalize.SectionMarker+" WEEKDAY ENTRIES"))
	fmt.Fprintln(bw, pad(layout.Normalize.CopyrightMarker+" Transport for London 2017"))
	fmt.Fprintln(bw, pad(p.Sprintf("Total entries: %d", grand)))

	cw := csv.NewWriter(bw)
	header := make([]string, width)
	header[0] = "nlc"
	header[c.Name] = "Station"
	for i := 0; i < c.SliceCount(); i++ {
		header[c.SlicesStart+i] = sliceLabel(i)
	}
	header[c.Total] = "Total"
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write raw header: %w", err)
	}
	cw.Flush()

	fmt.Fprintln(bw, pad(layout.Normalize.SeparatorPrefix))

	footer := make([]int, c.SliceCount())
	for i, s := range stations {
		row := make([]string, width)
		row[0] = strconv.Itoa(500 + i)
		row[c.Name] = s.Name
		if c.Name+1 < c.SlicesStart {
			row[c.Name+1] = s.Borough
		}
		for j, v := range s.Counts {
			row[c.SlicesStart+j] = strconv.Itoa(v)
			footer[j] += v
		}
		row[c.Total] = strconv.Itoa(s.Total())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write raw station %q: %w", s.Name, err)
		}
	}

	last := make([]string, width)
	last[0] = "Total"
	last[c.Name] = "All Stations"
	for j, v := range footer {
		last[c.SlicesStart+j] = strconv.Itoa(v)
	}
	last[c.Total] = strconv.Itoa(grand)
	if err := cw.Write(last); err != nil {
		return fmt.Errorf("write raw footer: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write raw: %w", err)
	}
	return bw.Flush()
}

// sliceLabel names quarter-hour slice i of a day starting at 05:00.
func sliceLabel(i int) string {
	start := (5*60 + i*15) % (24 * 60)
	end := (start + 15) % (24 * 60)
	return fmt.Sprintf("%02d%02d-%02d%02d", start/60, start%60, end/60, end%60)
}
