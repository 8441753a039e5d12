package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decolog/decolog/internal/client/models"
)

func validForm() Form {
	return Form{
		Date:           "2026-07-12",
		Site:           "Coral Garden",
		Location:       "Red Sea, Egypt",
		DepthMeters:    "18",
		BottomTimeMin:  "42",
		Gas:            "air",
		StartBar:       "210",
		EndBar:         "70",
		CylinderLiters: "11.1",
		Notes:          "  calm, great viz  ",
	}
}

func TestParseDiveForm_Valid(t *testing.T) {
	in, fe := ParseDiveForm(validForm())
	require.Empty(t, fe)

	assert.Equal(t, "2026-07-12", in.Date)
	assert.Equal(t, "Coral Garden", in.Site)
	assert.Equal(t, "Red Sea, Egypt", in.Location)
	assert.Equal(t, 18.0, in.DepthMeters)
	assert.Equal(t, 42.0, in.BottomTimeMin)
	assert.Equal(t, models.GasAir, in.Gas)
	assert.Equal(t, 210.0, in.StartBar)
	assert.Equal(t, 70.0, in.EndBar)
	assert.Equal(t, 11.1, in.CylinderLiters)
	assert.Equal(t, "calm, great viz", in.Notes, "notes are trimmed")
}

func TestParseDiveForm_BlankCylinderGetsDefault(t *testing.T) {
	f := validForm()
	f.CylinderLiters = ""
	in, fe := ParseDiveForm(f)
	require.Empty(t, fe)
	assert.Equal(t, models.DefaultCylinderLiters, in.CylinderLiters)
}

func TestParseDiveForm_OneMessagePerField(t *testing.T) {
	f := Form{
		Date:          "",
		Site:          "   ",
		DepthMeters:   "deep",
		BottomTimeMin: "-5",
		Gas:           "trimix",
		StartBar:      "0",
		EndBar:        "abc",
	}
	_, fe := ParseDiveForm(f)

	assert.Equal(t, "date is required", fe[FieldDate])
	assert.Equal(t, "site is required", fe[FieldSite])
	assert.Equal(t, "depth must be a number", fe[FieldDepth])
	assert.Equal(t, "bottom time must be greater than 0", fe[FieldBottomTime])
	assert.Equal(t, "gas must be AIR or EANnn", fe[FieldGas])
	assert.Equal(t, "start pressure must be greater than 0", fe[FieldStartBar])
	assert.Equal(t, "end pressure must be a number", fe[FieldEndBar])
	assert.Len(t, fe, 7, "exactly one message per offending field")
}

func TestParseDiveForm_DateFormat(t *testing.T) {
	f := validForm()
	f.Date = "12/07/2026"
	_, fe := ParseDiveForm(f)
	assert.Equal(t, "date must be YYYY-MM-DD", fe[FieldDate])
}

func TestParseDiveForm_DepthRange(t *testing.T) {
	f := validForm()
	f.DepthMeters = "100"
	_, fe := ParseDiveForm(f)
	require.Empty(t, fe, "100 m is inside the (0,100] range")

	f.DepthMeters = "100.5"
	_, fe = ParseDiveForm(f)
	assert.Equal(t, "depth must be at most 100 m", fe[FieldDepth])

	f.DepthMeters = "0"
	_, fe = ParseDiveForm(f)
	assert.Equal(t, "depth must be greater than 0", fe[FieldDepth])
}

func TestParseDiveForm_BottomTimeRange(t *testing.T) {
	f := validForm()
	f.BottomTimeMin = "600"
	_, fe := ParseDiveForm(f)
	require.Empty(t, fe)

	f.BottomTimeMin = "601"
	_, fe = ParseDiveForm(f)
	assert.Equal(t, "bottom time must be at most 600 min", fe[FieldBottomTime])
}

func TestParseDiveForm_EndPressureRules(t *testing.T) {
	f := validForm()
	f.EndBar = "210"
	_, fe := ParseDiveForm(f)
	assert.Equal(t, "end pressure must be less than start pressure", fe[FieldEndBar])

	f.EndBar = "-1"
	_, fe = ParseDiveForm(f)
	assert.Equal(t, "end pressure must be at least 0", fe[FieldEndBar])

	f.EndBar = "0"
	_, fe = ParseDiveForm(f)
	require.Empty(t, fe, "an emptied tank is a valid reading")
}

func TestParseDiveForm_EndPressureSkipsComparisonWhenStartInvalid(t *testing.T) {
	f := validForm()
	f.StartBar = "junk"
	f.EndBar = "70"
	_, fe := ParseDiveForm(f)

	assert.Equal(t, "start pressure must be a number", fe[FieldStartBar])
	assert.NotContains(t, fe, FieldEndBar, "end pressure alone is fine; only start is broken")
}

func TestParseDiveForm_CylinderRange(t *testing.T) {
	f := validForm()
	f.CylinderLiters = "200"
	_, fe := ParseDiveForm(f)
	require.Empty(t, fe)

	f.CylinderLiters = "201"
	_, fe = ParseDiveForm(f)
	assert.Equal(t, "cylinder size must be at most 200 L", fe[FieldCylinder])
}

func TestParseDiveForm_GasNormalized(t *testing.T) {
	f := validForm()
	f.Gas = "ean32"
	in, fe := ParseDiveForm(f)
	require.Empty(t, fe)
	assert.Equal(t, models.GasEan32, in.Gas)

	f.Gas = ""
	in, fe = ParseDiveForm(f)
	require.Empty(t, fe)
	assert.Equal(t, models.GasAir, in.Gas, "blank gas defaults to AIR")
}
