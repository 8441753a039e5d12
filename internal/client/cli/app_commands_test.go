package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decolog/decolog/internal/units"
)

func TestSeed_FillsEmptyLogOnce(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Seed(ctx))
	assert.Contains(t, out.String(), "Added 2 example dives")

	out.Reset()
	require.NoError(t, a.Seed(ctx))
	assert.Contains(t, out.String(), "already has dives")

	n, err := a.dives.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStats_EmptyLogHints(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.Stats(context.Background()))
	assert.Contains(t, out.String(), "No dives yet")
}

func TestStats_SummaryFollowsUnitPreference(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Seed(ctx))

	out.Reset()
	require.NoError(t, a.Stats(ctx))
	s := out.String()
	assert.Contains(t, s, "Dives:")
	assert.Contains(t, s, "2")
	assert.Contains(t, s, "77 min")
	assert.Contains(t, s, "30 m")
	assert.Contains(t, s, "11.8 L/min")
	assert.Contains(t, s, "AIR")
	assert.Contains(t, s, "EAN32")

	require.NoError(t, a.UnitsSet(ctx, "imperial"))

	out.Reset()
	require.NoError(t, a.Stats(ctx))
	assert.Contains(t, out.String(), "98 ft")
	assert.Contains(t, out.String(), "0.42 ft³/min")
}

func TestUnits_GetSetRoundTrip(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.UnitsGet(ctx))
	assert.Contains(t, out.String(), "Units: metric")

	out.Reset()
	require.NoError(t, a.UnitsSet(ctx, "imperial"))
	assert.Contains(t, out.String(), "Units set to imperial")

	out.Reset()
	require.NoError(t, a.UnitsGet(ctx))
	assert.Contains(t, out.String(), "Units: imperial")

	err := a.UnitsSet(ctx, "nautical")
	require.ErrorIs(t, err, units.ErrInvalidSystem)
}

func TestExport_JSONToStdout(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Seed(ctx))
	out.Reset()

	require.NoError(t, a.Export(ctx, "json", ""))
	assert.True(t, json.Valid(out.Bytes()), "export should be valid JSON")
	assert.Contains(t, out.String(), "Shark Reef")
	assert.Contains(t, out.String(), "Coral Garden")
}

func TestExport_CSVToFile(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Seed(ctx))
	out.Reset()

	path := filepath.Join(t.TempDir(), "dives.csv")
	require.NoError(t, a.Export(ctx, "csv", path))
	assert.Contains(t, out.String(), "Exported 2 dive(s) to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,date,site,location,depth_m,bottom_time_min,gas,start_bar,end_bar,cylinder_l,sac_lpm,notes", lines[0])
	assert.Contains(t, string(data), "Shark Reef")
}

func TestExport_UnsupportedFormat(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.Export(context.Background(), "xml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestSupportSend_WithFlags(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SupportSend(ctx, "Crash on export", "Export to CSV exits with an error.", true))
	assert.Contains(t, out.String(), "Support message #1 saved")

	msgs, err := a.support.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Crash on export", msgs[0].Subject)
	assert.Contains(t, msgs[0].DeviceInfo, "decolog")
}

func TestSupportSend_PromptsForMissingParts(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return true }
	t.Cleanup(func() { isTerminal = orig })

	a, _, _ := newTestApp(t)
	a.reader = bufio.NewReader(strings.NewReader("Sync stuck\nThe progress line never finishes.\n\n"))

	ctx := context.Background()
	require.NoError(t, a.SupportSend(ctx, "", "", false))

	msgs, err := a.support.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Sync stuck", msgs[0].Subject)
	assert.Equal(t, "The progress line never finishes.", msgs[0].Message)
	assert.Empty(t, msgs[0].DeviceInfo)
}

func TestSupportSend_RequiresSubjectAndMessage(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	a, _, _ := newTestApp(t)

	err := a.SupportSend(context.Background(), "", "", true)
	require.EqualError(t, err, "a subject and a message are required")
}

func TestSupportList_EmptyLog(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.SupportList(context.Background()))
	assert.Contains(t, out.String(), "No support messages filed")
}

func TestSupportList_ShowsFiledMessages(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SupportSend(ctx, "Crash on export", "Export to CSV exits with an error.", false))
	require.NoError(t, a.SupportSend(ctx, "Sync stuck", "The progress line never finishes.", false))
	out.Reset()

	require.NoError(t, a.SupportList(ctx))
	s := out.String()
	assert.Contains(t, s, "#1")
	assert.Contains(t, s, "Crash on export")
	assert.Contains(t, s, "#2")
	assert.Contains(t, s, "Sync stuck")
}
