package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/services"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleSnapshot() *services.Snapshot {
	newer := time.Date(2026, 8, 13, 9, 30, 0, 0, time.UTC)
	older := time.Date(2026, 8, 6, 14, 15, 0, 0, time.UTC)

	return &services.Snapshot{
		GeneratedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Dives: []models.DiveRecord{
			{
				ID:             2,
				Date:           "2026-08-13",
				Site:           "Shark Reef",
				Location:       "Red Sea, Egypt",
				DepthMeters:    30,
				BottomTimeMin:  35,
				Gas:            models.GasEan32,
				StartBar:       220,
				EndBar:         90,
				CylinderLiters: 11.1,
				SacLpm:         10.31,
				Notes:          "Example dive with nitrox.",
				CreatedAt:      newer,
				UpdatedAt:      newer,
			},
			{
				ID:             1,
				Date:           "2026-08-06",
				Site:           "Coral Garden",
				Location:       "Red Sea, Egypt",
				DepthMeters:    18,
				BottomTimeMin:  42,
				Gas:            models.GasAir,
				StartBar:       210,
				EndBar:         70,
				CylinderLiters: 11.1,
				SacLpm:         13.21,
				CreatedAt:      older,
				UpdatedAt:      older,
			},
		},
		Profile: &models.DiverProfile{
			Name:           "Alex Diver",
			Email:          "alex@example.com",
			CertAgency:     "PADI",
			CertLevel:      "Rescue Diver",
			CertNumber:     "1234567",
			EmergencyName:  "Sam Diver",
			EmergencyPhone: "+356 9999 0000",
		},
	}
}

func emptySnapshot() *services.Snapshot {
	return &services.Snapshot{
		GeneratedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Dives:       []models.DiveRecord{},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSnapshot()))
	newGoldie(t).Assert(t, "snapshot", buf.Bytes())
}

func TestWriteJSON_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, emptySnapshot()))
	newGoldie(t).Assert(t, "snapshot_empty", buf.Bytes())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSnapshot()))
	newGoldie(t).Assert(t, "dives", buf.Bytes())
}

func TestWriteCSV_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, emptySnapshot()))
	newGoldie(t).Assert(t, "dives_empty", buf.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteJSON_WriterError(t *testing.T) {
	require.Error(t, WriteJSON(failingWriter{}, sampleSnapshot()))
}

func TestWriteCSV_WriterError(t *testing.T) {
	require.Error(t, WriteCSV(failingWriter{}, sampleSnapshot()))
}
