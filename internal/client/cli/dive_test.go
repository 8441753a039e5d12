package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/validation"
	"github.com/decolog/decolog/internal/shared"
)

func validDiveForm() validation.Form {
	return validation.Form{
		Date:          "2026-08-20",
		Site:          "Blue Hole",
		Location:      "Gozo, Malta",
		DepthMeters:   "30",
		BottomTimeMin: "35",
		Gas:           "ean32",
		StartBar:      "220",
		EndBar:        "90",
		Notes:         "great viz",
	}
}

func TestDiveAdd_SavesAndPrintsSac(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.DiveAdd(context.Background(), validDiveForm()))

	assert.Contains(t, out.String(), "Dive #1 saved: Blue Hole, 2026-08-20")
	assert.Contains(t, out.String(), "SAC 10.3 L/min")
}

func TestDiveAdd_ValidationFailuresListedPerField(t *testing.T) {
	a, _, out := newTestApp(t)

	form := validDiveForm()
	form.Date = "20-08-2026"
	form.DepthMeters = "deep"
	form.EndBar = "230"

	err := a.DiveAdd(context.Background(), form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 field(s)")

	assert.Contains(t, out.String(), "date must be YYYY-MM-DD")
	assert.Contains(t, out.String(), "depth must be a number")
	assert.Contains(t, out.String(), "end pressure must be less than start pressure")

	n, countErr := a.dives.Count(context.Background())
	require.NoError(t, countErr)
	assert.Zero(t, n)
}

func TestDiveAdd_FreeLimitRendersUpgradeHint(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	in := models.DiveInput{Date: "2026-08-01", Site: "Training Pool", DepthMeters: 5, BottomTimeMin: 30, StartBar: 200, EndBar: 150}
	for i := 0; i < 10; i++ {
		_, err := a.dives.Add(ctx, in)
		require.NoError(t, err)
	}

	err := a.DiveAdd(ctx, validDiveForm())
	require.ErrorIs(t, err, shared.ErrDiveLimitReached)
	assert.Contains(t, out.String(), "The free tier stops at 10 dives.")
	assert.Contains(t, out.String(), "license upgrade --tier pro")
}

func TestDiveList_EmptyLogHints(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.DiveList(context.Background()))
	assert.Contains(t, out.String(), "No dives yet")
	assert.Contains(t, out.String(), "decolog seed")
}

func TestDiveList_RendersTableNewestFirst(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	_, err := a.dives.SeedIfEmpty(ctx)
	require.NoError(t, err)

	require.NoError(t, a.DiveList(ctx))

	s := out.String()
	assert.Contains(t, s, "ID")
	assert.Contains(t, s, "SITE")
	assert.Contains(t, s, "Shark Reef")
	assert.Contains(t, s, "Coral Garden")
	assert.Contains(t, s, "30 m")
	assert.Contains(t, s, "EAN32")
	assert.Contains(t, s, "2 dive(s)")
	// newest seed dive renders before the older one
	assert.Less(t, strings.Index(s, "Shark Reef"), strings.Index(s, "Coral Garden"))
}

func TestDiveShow_RendersDetail(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.DiveAdd(ctx, validDiveForm()))
	out.Reset()

	require.NoError(t, a.DiveShow(ctx, 1))

	s := out.String()
	assert.Contains(t, s, "Dive #1")
	assert.Contains(t, s, "Blue Hole")
	assert.Contains(t, s, "Gozo, Malta")
	assert.Contains(t, s, "220 bar -> 90 bar")
	assert.Contains(t, s, "11.1 L")
	assert.Contains(t, s, "great viz")
}

func TestDiveShow_NotFound(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.DiveShow(context.Background(), 42)
	require.EqualError(t, err, "dive 42 not found")
}

func TestDiveEdit_ChangesOnlyGivenFlags(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.DiveAdd(ctx, validDiveForm()))

	flags := &diveFlags{site: "Inland Sea", depth: "12"}
	changed := func(name string) bool { return name == "site" || name == "depth" }

	require.NoError(t, a.DiveEdit(ctx, 1, flags, changed, false))
	assert.Contains(t, out.String(), "Dive #1 updated.")

	rec, err := a.dives.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Inland Sea", rec.Site)
	assert.Equal(t, 12.0, rec.DepthMeters)
	// untouched fields survive
	assert.Equal(t, "2026-08-20", rec.Date)
	assert.Equal(t, 220.0, rec.StartBar)
	assert.Equal(t, "great viz", rec.Notes)
}

func TestDiveEdit_ValidatesAgainstMergedRecord(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.DiveAdd(ctx, validDiveForm()))

	// stored start pressure is 220, so 230 cannot be the end pressure
	flags := &diveFlags{end: "230"}
	changed := func(name string) bool { return name == "end" }

	err := a.DiveEdit(ctx, 1, flags, changed, false)
	require.Error(t, err)
	assert.Contains(t, out.String(), "end pressure must be less than start pressure")

	rec, getErr := a.dives.Get(ctx, 1)
	require.NoError(t, getErr)
	assert.Equal(t, 90.0, rec.EndBar)
}

func TestDiveEdit_InteractiveKeepsDefaults(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.DiveAdd(ctx, validDiveForm()))

	// Enter through every prompt except site; empty notes body keeps the
	// stored notes.
	a.reader = bufio.NewReader(strings.NewReader("\nInland Sea\n\n\n\n\n\n\n\n\n"))

	require.NoError(t, a.DiveEdit(ctx, 1, &diveFlags{}, func(string) bool { return false }, true))

	rec, err := a.dives.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Inland Sea", rec.Site)
	assert.Equal(t, "2026-08-20", rec.Date)
	assert.Equal(t, 30.0, rec.DepthMeters)
	assert.Equal(t, "great viz", rec.Notes)
}

func TestDiveEdit_NotFound(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.DiveEdit(context.Background(), 7, &diveFlags{site: "x"}, func(string) bool { return true }, false)
	require.EqualError(t, err, "dive 7 not found")
}

func TestDiveDelete_Idempotent(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.DiveAdd(ctx, validDiveForm()))

	require.NoError(t, a.DiveDelete(ctx, 1))
	assert.Contains(t, out.String(), "Dive #1 deleted.")

	// a second delete of the same id is still fine
	require.NoError(t, a.DiveDelete(ctx, 1))

	n, err := a.dives.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestParseID(t *testing.T) {
	id, err := parseID("15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	_, err = parseID("abc")
	require.Error(t, err)

	_, err = parseID("0")
	require.Error(t, err)

	_, err = parseID("-3")
	require.Error(t, err)
}
