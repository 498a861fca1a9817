package codebook

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyColumnOrder(t *testing.T) {
	pm, err := Names(FamilyParticulate)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Time_Stamp", "Instrument_ID", "Date", "Time", "Condition", "Session", "Prox_to_xroad",
		"Relative_Humidity", "Temperature", "PM25", "PM10",
	}, pm)

	gas, err := Names(FamilyGas)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Time_Stamp", "Instrument_ID", "Prox_to_xroad", "Date", "Time", "Condition", "Session", "IAQ",
	}, gas)

	_, err = Names("opc")
	assert.Error(t, err)
}

func TestMeasurementNamesResolveBySubstring(t *testing.T) {
	for _, f := range Families() {
		names, err := Names(f)
		require.NoError(t, err)
		for _, needle := range []string{"PM25", "PM10", "IAQ", "Temperature", "Humidity"} {
			matches := 0
			for _, n := range names {
				if strings.Contains(n, needle) {
					matches++
				}
			}
			assert.LessOrEqual(t, matches, 1, "family %s needle %s", f, needle)
		}
	}
}

func TestForFamilyReturnsCopy(t *testing.T) {
	cols, err := ForFamily(FamilyGas)
	require.NoError(t, err)
	cols[0].Name = "mutated"

	again, err := ForFamily(FamilyGas)
	require.NoError(t, err)
	assert.Equal(t, "Time_Stamp", again[0].Name)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInt, KindOf("Time_Stamp"))
	assert.Equal(t, KindFloat, KindOf("PM25"))
	assert.Equal(t, KindFloat, KindOf("IAQ"))
	assert.Equal(t, KindString, KindOf("Session"))
	assert.Equal(t, KindString, KindOf("whatever"))
}

func TestRenderers(t *testing.T) {
	var md bytes.Buffer
	require.NoError(t, WriteMarkdown(&md))
	assert.Contains(t, md.String(), "## modpm")
	assert.Contains(t, md.String(), "| 10 | PM25 | float | ug/m3 | PM2.5 from Optical Particle Counter (ug/m3) |")

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out))
	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1+11+8)
	assert.Equal(t, []string{"gas", "8", "IAQ", "float", "", "Indoor air quality index reported by the gas sensor"}, rows[len(rows)-1])
}
