package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/vvka-141/vaxstat/internal/lookup"
	"github.com/vvka-141/vaxstat/pkg/vaxstat"
)

// DoseSource supplies the distinct dose tuples to aggregate.
type DoseSource interface {
	DistinctDoses(ctx context.Context) ([]vaxstat.DoseRecord, error)
}

// Aggregator computes dose summaries from a DoseSource.
type Aggregator struct {
	source  DoseSource
	logger  vaxstat.Logger
	skipped int
}

// New creates an Aggregator reading from source. Skipped tuples are reported to logger.
func New(source DoseSource, logger vaxstat.Logger) *Aggregator {
	return &Aggregator{source: source, logger: logger}
}

// Skipped returns the number of tuples dropped by the last computation.
func (a *Aggregator) Skipped() int {
	return a.skipped
}

// ComputeCounts reads every distinct dose tuple and sums doses per country and vaccine.
// A source failure aborts the computation and no partial summary is returned.
func (a *Aggregator) ComputeCounts(ctx context.Context) (vaxstat.Counts, error) {
	records, err := a.source.DistinctDoses(ctx)
	if err != nil {
		if !errors.Is(err, vaxstat.ErrConnectionFailed) {
			err = fmt.Errorf("%w: %w", vaxstat.ErrConnectionFailed, err)
		}
		return nil, fmt.Errorf("failed to read dose tuples: %w", err)
	}

	a.reportUnmapped(records)

	counts, skips := Accumulate(records)
	a.skipped = len(skips)
	for _, s := range skips {
		a.logger.Error("%v: doses=%s country=%s vaccine=%s",
			s.Err, formatDoses(s.Record.DosesReceived), s.Record.CountryCode, s.Record.VaccineCode)
	}

	a.logger.Verbose("Aggregated %d tuples into %d countries (%d skipped)", len(records), len(counts), len(skips))
	return counts, nil
}

// reportUnmapped logs, once per code, the codes that have no display name
// and are kept as-is in the summary.
func (a *Aggregator) reportUnmapped(records []vaxstat.DoseRecord) {
	countries := make(map[string]struct{})
	vaccines := make(map[string]struct{})
	for _, rec := range records {
		if !lookup.CountryDisplayName.Has(rec.CountryCode) {
			countries[rec.CountryCode] = struct{}{}
		}
		if !lookup.VaccineDisplayName.Has(rec.VaccineCode) {
			vaccines[rec.VaccineCode] = struct{}{}
		}
	}
	for _, code := range sortedKeys(countries) {
		a.logger.Verbose("No display name for country code %q", code)
	}
	for _, code := range sortedKeys(vaccines) {
		a.logger.Verbose("No display name for vaccine code %q", code)
	}
}

// ComputePercentages computes counts and converts each vaccine accumulator to
// its share of the country's total.
func (a *Aggregator) ComputePercentages(ctx context.Context) (vaxstat.Percentages, error) {
	counts, err := a.ComputeCounts(ctx)
	if err != nil {
		return nil, err
	}
	return ToPercentages(counts), nil
}

// Skip describes a dose tuple that was left out of a summary.
type Skip struct {
	Record vaxstat.DoseRecord
	Err    error
}

// Accumulate sums records into Counts, resolving codes to display names and
// treating NULL doses as zero. Tuples that cannot be added without breaking
// the total invariant are returned as skips and do not touch the summary.
func Accumulate(records []vaxstat.DoseRecord) (vaxstat.Counts, []Skip) {
	counts := make(vaxstat.Counts)
	var skips []Skip

	for _, rec := range records {
		country := lookup.Country(rec.CountryCode)
		vaccine := lookup.Vaccine(rec.VaccineCode)
		doses := rec.Doses()

		if vaccine == vaxstat.TotalDosesKey {
			skips = append(skips, Skip{
				Record: rec,
				Err:    fmt.Errorf("vaccine name collides with the %q accumulator: %w", vaxstat.TotalDosesKey, vaxstat.ErrAggregationSkip),
			})
			continue
		}

		byVaccine, ok := counts[country]
		if !ok {
			counts[country] = map[string]int64{
				vaccine:               doses,
				vaxstat.TotalDosesKey: doses,
			}
			continue
		}

		// Both sums are checked before either is stored.
		next, errVaccine := add(byVaccine[vaccine], doses)
		total, errTotal := add(byVaccine[vaxstat.TotalDosesKey], doses)
		if err := errors.Join(errVaccine, errTotal); err != nil {
			skips = append(skips, Skip{Record: rec, Err: err})
			continue
		}

		byVaccine[vaccine] = next
		byVaccine[vaxstat.TotalDosesKey] = total
	}

	return counts, skips
}

// ToPercentages converts counts into per-vaccine shares of each country's
// total, rounded to two decimals. Countries whose total is zero keep their raw
// counts. The input is not modified.
func ToPercentages(counts vaxstat.Counts) vaxstat.Percentages {
	out := make(vaxstat.Percentages, len(counts))

	for country, byVaccine := range counts {
		total := byVaccine[vaxstat.TotalDosesKey]
		shares := make(map[string]float64, len(byVaccine))

		for vaccine, n := range byVaccine {
			if vaccine == vaxstat.TotalDosesKey {
				continue
			}
			if total == 0 {
				shares[vaccine] = float64(n)
				continue
			}
			shares[vaccine] = round2(100.0 * float64(n) / float64(total))
		}

		out[country] = shares
	}

	return out
}

func add(acc, n int64) (int64, error) {
	sum := acc + n
	if (n > 0 && sum < acc) || (n < 0 && sum > acc) {
		return acc, fmt.Errorf("adding %d to %d overflows: %w", n, acc, vaxstat.ErrAggregationSkip)
	}
	return sum, nil
}

// round2 rounds the exact binary value of v to two decimals, ties to even.
// A share of 0.125 becomes 0.12, not 0.13.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatDoses(d *int64) string {
	if d == nil {
		return "NULL"
	}
	return strconv.FormatInt(*d, 10)
}
