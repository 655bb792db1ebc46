package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Reader wraps an io.Reader and computes the SHA-256 of everything read.
// A Reader is not safe for concurrent use.
type Reader struct {
	r io.Reader
	h hash.Hash
	n int64
}

// NewReader returns a hashing Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: sha256.New()}
}

// Read implements io.Reader.
func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.h.Write(p[:n])
		c.n += int64(n)
	}
	return n, err
}

// Sum returns the hex digest of the bytes read so far.
func (c *Reader) Sum() string {
	return hex.EncodeToString(c.h.Sum(nil))
}

// BytesRead returns how many bytes have passed through the Reader.
func (c *Reader) BytesRead() int64 {
	return c.n
}
