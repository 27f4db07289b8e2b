// Package entropy provides the production TokenSource backed by the
// operating system CSPRNG.
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/sufield/credjar/internal/ports"
)

// Source reads token bytes from an io.Reader, crypto/rand.Reader by default.
type Source struct {
	r io.Reader
}

// NewSource returns a Source reading from crypto/rand.
func NewSource() *Source {
	return &Source{r: rand.Reader}
}

// NewSourceFromReader returns a Source reading from r. Intended for tests
// that need a degraded or deterministic source.
func NewSourceFromReader(r io.Reader) *Source {
	return &Source{r: r}
}

// Read fills p completely or returns an error.
func (s *Source) Read(p []byte) error {
	if _, err := io.ReadFull(s.r, p); err != nil {
		return fmt.Errorf("read %d entropy bytes: %w", len(p), err)
	}
	return nil
}

var _ ports.TokenSource = (*Source)(nil)
