// Package store owns the two PostgreSQL tables behind vaxstat.
//
// raw_data receives the CSV export verbatim through COPY. vaccine_data is a
// projection of raw_data down to (NumberDosesReceived, ReportingCountry,
// Vaccine) and is what the aggregator reads.
//
// A Store wraps exactly one connection. Each CLI operation opens its own Store
// and closes it when done; nothing is pooled or shared between operations.
package store
