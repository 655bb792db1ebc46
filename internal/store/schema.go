package store

import (
	"fmt"
	"strings"

	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// Column is one column of a table definition.
type Column struct {
	Name string
	Type string
}

// RawColumns mirrors the ECDC vaccine tracker CSV layout, in file order.
// See https://www.ecdc.europa.eu/sites/default/files/documents/Variable_Dictionary_VaccineTracker-03-2021.pdf
var RawColumns = []Column{
	{"YearWeekISO", "text"},
	{"FirstDose", "bigint"},
	{"FirstDoseRefused", "bigint"},
	{"SecondDose", "bigint"},
	{"UnknownDose", "bigint"},
	{"NumberDosesReceived", "bigint"},
	{"Region", "text"},
	{"Population", "text"},
	{"ReportingCountry", "text"},
	{"TargetGroup", "text"},
	{"Vaccine", "text"},
	{"Denominator", "text"},
}

// VaccineColumns is the projection of RawColumns read by the aggregator.
var VaccineColumns = []Column{
	{"NumberDosesReceived", "bigint"},
	{"ReportingCountry", "text"},
	{"Vaccine", "text"},
}

const createPostGIS = `CREATE EXTENSION IF NOT EXISTS postgis`

var (
	dropRawTable     = "DROP TABLE IF EXISTS " + vaxstat.RawTable
	dropVaccineTable = "DROP TABLE IF EXISTS " + vaxstat.VaccineTable

	createRawTable     = createTable(vaxstat.RawTable, RawColumns)
	createVaccineTable = createTable(vaxstat.VaccineTable, VaccineColumns)

	copyRawData = fmt.Sprintf("COPY %s FROM STDIN CSV", vaxstat.RawTable)

	truncateVaccineTable = "TRUNCATE " + vaxstat.VaccineTable

	projectVaccineData = fmt.Sprintf("INSERT INTO %s SELECT %s FROM %s",
		vaxstat.VaccineTable, columnList(VaccineColumns), vaxstat.RawTable)

	selectDistinctDoses = fmt.Sprintf("SELECT DISTINCT %s FROM %s",
		columnList(VaccineColumns), vaxstat.VaccineTable)
)

func createTable(name string, columns []Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c.Name + " " + c.Type
	}
	return fmt.Sprintf("CREATE TABLE %s(%s)", name, strings.Join(defs, ", "))
}

func columnList(columns []Column) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
