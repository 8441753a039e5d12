package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decolog/decolog/internal/units"
)

func TestSettings_UnitsDefaultToMetric(t *testing.T) {
	db := setupDB(t)
	svc := NewSettingsService(db)

	sys, err := svc.Units(context.Background())
	require.NoError(t, err)
	assert.Equal(t, units.Metric, sys)
}

func TestSettings_SetUnitsPersists(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSettingsService(db).SetUnits(ctx, units.Imperial))

	// a fresh service over the same DB must see the stored preference
	sys, err := NewSettingsService(db).Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, units.Imperial, sys)
}

func TestSettings_SetUnitsRejectsUnknownSystem(t *testing.T) {
	db := setupDB(t)
	svc := NewSettingsService(db)
	ctx := context.Background()

	err := svc.SetUnits(ctx, units.System("nautical"))
	require.ErrorIs(t, err, units.ErrInvalidSystem)

	sys, err := svc.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, units.Metric, sys)
}
