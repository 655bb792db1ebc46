// Package checksum fingerprints loaded data files.
//
// A Reader hashes bytes as they are consumed, so a file streamed into
// PostgreSQL with COPY is fingerprinted in the same pass without buffering:
//
//	r := checksum.NewReader(f)
//	n, err := store.BulkLoad(ctx, r)
//	logger.Verbose("sha256=%s", r.Sum())
//
// The digest identifies exactly which export a set of rows came from.
package checksum
