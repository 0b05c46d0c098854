package selection

import (
	"testing"

	"github.com/couchcryptid/tube-commuters/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = []string{"Bank", "Moorgate", "Angel", "Oval", "Brixton", "Kings Cross", "Euston"}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	tbl := domain.Table{Columns: domain.DefaultLayout().Columns}
	for _, name := range append(testNames, "All Stations") {
		row := make([]string, tbl.Columns.MinFields())
		row[tbl.Columns.Name] = name
		tbl.Rows = append(tbl.Rows, row)
	}
	return domain.NewCatalog(tbl)
}

// feed applies inputs in order and returns the final session and effects.
func feed(c *domain.Catalog, inputs ...string) (Session, []Effect) {
	s := NewSession()
	effects := make([]Effect, 0, len(inputs))
	for _, in := range inputs {
		var e Effect
		s, e = s.Next(in, c)
		effects = append(effects, e)
	}
	return s, effects
}

func TestSession_AcceptsCanonicalNames(t *testing.T) {
	s, effects := feed(testCatalog(t), "bank", "  KINGS CROSS ", CommandDone)

	assert.Equal(t, []Effect{EffectAccepted, EffectAccepted, EffectDone}, effects)
	assert.Equal(t, Done, s.State())
	assert.Equal(t, []string{"Bank", "Kings Cross"}, s.Picks())
	assert.False(t, s.Ranked())
}

func TestSession_RejectsUnknown(t *testing.T) {
	s, effects := feed(testCatalog(t), "Atlantis", "")

	assert.Equal(t, []Effect{EffectUnknown, EffectUnknown}, effects)
	assert.Equal(t, Collecting, s.State())
	assert.Empty(t, s.Picks())
}

func TestSession_RejectsDuplicate(t *testing.T) {
	s, effects := feed(testCatalog(t), "Bank", "bank", CommandDone)

	assert.Equal(t, []Effect{EffectAccepted, EffectDuplicate, EffectDone}, effects)
	assert.Equal(t, []string{"Bank"}, s.Picks())
}

func TestSession_StopsAtFive(t *testing.T) {
	s, effects := feed(testCatalog(t), testNames...)

	assert.Equal(t, Done, s.State())
	assert.Len(t, s.Picks(), MaxStations)
	assert.Equal(t, testNames[:MaxStations], s.Picks())
	assert.Equal(t, EffectIgnored, effects[5])
	assert.Equal(t, EffectIgnored, effects[6])
}

func TestSession_BusiestDiscardsPicks(t *testing.T) {
	s, effects := feed(testCatalog(t), "Bank", "Oval", " Busiest 5 ")

	assert.Equal(t, EffectBusiest, effects[2])
	assert.Equal(t, Ranked, s.State())
	assert.Empty(t, s.Picks())
	assert.True(t, s.Ranked())
}

func TestSession_DoneWithNothingFallsBackToRanked(t *testing.T) {
	c := testCatalog(t)
	done, _ := feed(c, "DONE")
	busiest, _ := feed(c, CommandBusiest)

	assert.True(t, done.Ranked())
	assert.True(t, busiest.Ranked())
	assert.Equal(t, done.Picks(), busiest.Picks())
}

func TestSession_NextDoesNotMutateReceiver(t *testing.T) {
	c := testCatalog(t)
	base, _ := feed(c, "Bank")

	a, _ := base.Next("Oval", c)
	b, _ := base.Next("Angel", c)

	require.Equal(t, []string{"Bank"}, base.Picks())
	assert.Equal(t, []string{"Bank", "Oval"}, a.Picks())
	assert.Equal(t, []string{"Bank", "Angel"}, b.Picks())
	assert.Equal(t, Collecting, base.State())
}

func TestSession_IgnoresInputOnceFinished(t *testing.T) {
	c := testCatalog(t)
	s, _ := feed(c, CommandBusiest)

	next, effect := s.Next("Bank", c)
	assert.Equal(t, EffectIgnored, effect)
	assert.Equal(t, Ranked, next.State())
}

func TestStateAndEffectStrings(t *testing.T) {
	assert.Equal(t, "collecting", Collecting.String())
	assert.Equal(t, "ranked", Ranked.String())
	assert.Equal(t, "duplicate", EffectDuplicate.String())
	assert.Equal(t, "ignored", EffectIgnored.String())
}
