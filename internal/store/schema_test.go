package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawColumns_MatchCSVLayout(t *testing.T) {
	assert.Len(t, RawColumns, 12)

	var bigints int
	for _, c := range RawColumns {
		if c.Type == "bigint" {
			bigints++
		}
	}
	assert.Equal(t, 5, bigints)
	assert.Equal(t, "YearWeekISO", RawColumns[0].Name)
	assert.Equal(t, "Denominator", RawColumns[11].Name)
}

func TestVaccineColumns_AreRawColumns(t *testing.T) {
	raw := make(map[string]string, len(RawColumns))
	for _, c := range RawColumns {
		raw[c.Name] = c.Type
	}
	for _, c := range VaccineColumns {
		assert.Equal(t, raw[c.Name], c.Type, c.Name)
	}
}

func TestStatements(t *testing.T) {
	assert.Equal(t,
		"CREATE TABLE vaccine_data(NumberDosesReceived bigint, ReportingCountry text, Vaccine text)",
		createVaccineTable)
	assert.Equal(t, "COPY raw_data FROM STDIN CSV", copyRawData)
	assert.Equal(t,
		"INSERT INTO vaccine_data SELECT NumberDosesReceived, ReportingCountry, Vaccine FROM raw_data",
		projectVaccineData)
	assert.Equal(t,
		"SELECT DISTINCT NumberDosesReceived, ReportingCountry, Vaccine FROM vaccine_data",
		selectDistinctDoses)
	assert.Contains(t, createRawTable, "NumberDosesReceived bigint")
	assert.Contains(t, createRawTable, "Population text")
}
