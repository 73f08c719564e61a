// Package shamir implements Shamir's Secret Sharing over GF(256) to split
// secrets into N parts, of which any K can be joined to recover the
// original secret.
//
// The scheme uses the same field polynomial as AES: 0x11b, or
// x^8 + x^4 + x^3 + x + 1.
package shamir

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/partsplit/partsplit/pkg/crypto/gf256"
	"github.com/partsplit/partsplit/pkg/secure"
)

// Config holds the immutable scheme parameters: the number of parts a
// split produces and the number of parts a join requires.
type Config struct {
	Parts     int
	Threshold int
}

func (c Config) Validate() error {
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Parts < c.Threshold {
		return fmt.Errorf("parts (%d) cannot be less than threshold (%d)", c.Parts, c.Threshold)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	return nil
}

// Scheme splits and joins secrets under a fixed configuration with an
// injected randomness source. Both operations are pure transformations
// apart from randomness draws; a Scheme is safe for concurrent use as long
// as its randomness source is.
type Scheme struct {
	config Config
	random io.Reader
}

// New validates the configuration and returns a Scheme. A nil random
// source selects crypto/rand.Reader.
func New(random io.Reader, config Config) (*Scheme, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if random == nil {
		random = rand.Reader
	}
	return &Scheme{config: config, random: random}, nil
}

// Parts returns the number of parts Split produces.
func (s *Scheme) Parts() int { return s.config.Parts }

// Threshold returns the number of parts Join requires.
func (s *Scheme) Threshold() int { return s.config.Threshold }

func (s *Scheme) String() string {
	return fmt.Sprintf("shamir.Scheme[parts=%d, threshold=%d]", s.config.Parts, s.config.Threshold)
}

// Split splits the secret into Parts() byte sequences keyed by part
// identifiers 1..N. Every part has the secret's length; an empty secret is
// legal and produces empty parts. Each call draws fresh randomness, so two
// splits of the same secret yield different parts that both reconstruct it.
func (s *Scheme) Split(secret []byte) (map[byte][]byte, error) {
	parts := make(map[byte][]byte, s.config.Parts)
	for id := 1; id <= s.config.Parts; id++ {
		parts[byte(id)] = make([]byte, len(secret))
	}

	// Each secret byte gets its own random degree K-1 polynomial with the
	// byte as constant term; part p holds the evaluation at x = p.
	for i, b := range secret {
		poly, err := gf256.Generate(s.random, s.config.Threshold-1, b)
		if err != nil {
			return nil, fmt.Errorf("failed to generate polynomial: %w", err)
		}
		for id := 1; id <= s.config.Parts; id++ {
			parts[byte(id)][i] = gf256.Eval(poly, byte(id))
		}
		secure.Zero(poly)
	}

	return parts, nil
}

// Join recovers the secret from a map of part identifiers to part values.
// It fails when no parts are supplied, when fewer than Threshold() parts
// are supplied, when a part carries identifier 0, or when the part values
// have varying lengths.
//
// N.B.: there is no way to determine whether the returned value is the
// original secret. If the parts are forged, tampered with, or come from a
// split with a higher threshold, a garbage value is returned without
// error. Callers needing integrity must layer a checksum over the secret
// before splitting.
func (s *Scheme) Join(parts map[byte][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no parts provided")
	}
	if len(parts) < s.config.Threshold {
		return nil, fmt.Errorf("not enough parts: have %d, need %d", len(parts), s.config.Threshold)
	}

	length := -1
	for id, data := range parts {
		if id == 0 {
			return nil, fmt.Errorf("part identifier cannot be 0")
		}
		if length < 0 {
			length = len(data)
		} else if len(data) != length {
			return nil, fmt.Errorf("varying lengths of part values")
		}
	}

	secret := make([]byte, length)
	points := make([]gf256.Point, 0, len(parts))
	for i := range secret {
		points = points[:0]
		for id, data := range parts {
			points = append(points, gf256.Point{X: id, Y: data[i]})
		}

		b, err := gf256.Interpolate(points)
		if err != nil {
			// Map keys are distinct, so duplicate x coordinates cannot
			// reach the interpolation from here.
			return nil, fmt.Errorf("invalid parts: %w", err)
		}
		secret[i] = b
	}

	return secret, nil
}
