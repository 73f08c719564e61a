// Package gf256 implements arithmetic over the finite field GF(256) using
// the AES (Rijndael) field polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
//
// Elements are single bytes. Multiplication and division go through
// precomputed log/exp tables built over the multiplicative group generated
// by 0x03.
package gf256

import (
	"errors"
	"fmt"
	"io"
)

const (
	// AES field polynomial: x^8 + x^4 + x^3 + x + 1
	fieldPolynomial = 0x11b
)

// ErrDivisionByZero is returned when a divisor is the zero element, which
// has no multiplicative inverse.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// exp and log tables for the multiplicative group. Built once at startup
// and only read afterwards, so they are safe for unsynchronized concurrent
// use.
var (
	expTable [256]byte
	logTable [256]byte
)

func init() {
	// Walk the powers of the generator 0x03. Multiplying by 3 = x + 1 is
	// (x << 1) ^ x, reduced by the field polynomial on overflow.
	x := uint16(1)
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)

		x = (x << 1) ^ x
		if x >= 256 {
			x ^= fieldPolynomial
		}
	}
	// g^255 = g^0 = 1 closes the cycle. logTable[0] stays unused; zero has
	// no discrete log.
	expTable[255] = expTable[0]
}

// Add returns a + b. The field has characteristic 2, so addition is XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b, which in GF(256) is the same XOR as Add.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns the product of a and b.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(int(logTable[a])+int(logTable[b]))%255]
}

// Div returns a / b. Dividing by the zero element fails with
// ErrDivisionByZero; a zero numerator yields zero.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	return expTable[(int(logTable[a])-int(logTable[b])+255)%255], nil
}

// Exp returns a raised to the power e. Exp(a, 0) is 1 for any a, and
// Exp(0, e) is 0 for any e > 0.
func Exp(a, e byte) byte {
	if e == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	return expTable[(int(logTable[a])*int(e))%255]
}

// Polynomial holds field-element coefficients; index i is the coefficient
// of x^i, so the degree is len-1.
type Polynomial []byte

// Eval evaluates p at x using Horner's method, highest degree first.
func Eval(p Polynomial, x byte) byte {
	var result byte
	for i := len(p) - 1; i >= 0; i-- {
		result = Mul(result, x) ^ p[i]
	}
	return result
}

// Generate produces a random polynomial of exactly the given degree whose
// constant term is the provided byte. The remaining coefficients are drawn
// from random, and the highest-degree coefficient is redrawn until nonzero
// so the degree never silently collapses.
func Generate(random io.Reader, degree int, constant byte) (Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("gf256: degree cannot be negative, got %d", degree)
	}

	p := make(Polynomial, degree+1)
	p[0] = constant
	if degree == 0 {
		return p, nil
	}

	if _, err := io.ReadFull(random, p[1:]); err != nil {
		return nil, fmt.Errorf("gf256: failed to read random coefficients: %w", err)
	}
	for p[degree] == 0 {
		if _, err := io.ReadFull(random, p[degree:]); err != nil {
			return nil, fmt.Errorf("gf256: failed to read random coefficients: %w", err)
		}
	}

	return p, nil
}

// Point is an (x, y) sample of a polynomial over the field.
type Point struct {
	X byte
	Y byte
}

// Interpolate recovers the constant term of the unique minimal-degree
// polynomial passing through the given points, i.e. its value at x = 0,
// using Lagrange interpolation. The x coordinates must be pairwise
// distinct; duplicates surface as ErrDivisionByZero.
func Interpolate(points []Point) (byte, error) {
	var result byte
	for i := range points {
		weight := byte(1)
		for j := range points {
			if j == i {
				continue
			}
			// x_j / (x_j - x_i), subtraction being XOR.
			term, err := Div(points[j].X, Sub(points[j].X, points[i].X))
			if err != nil {
				return 0, fmt.Errorf("gf256: points share x coordinate %#02x: %w", points[i].X, err)
			}
			weight = Mul(weight, term)
		}
		result = Add(result, Mul(weight, points[i].Y))
	}
	return result, nil
}
