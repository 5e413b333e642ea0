package field

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
)

var (
	// ErrNotInField is returned when a parsed value is not a canonical field element.
	ErrNotInField = errors.New("value is not a field element")
	// ErrUnsupportedCurve is returned for curves without a usable scalar field.
	ErrUnsupportedCurve = errors.New("unsupported curve")
)

// Field is the scalar field of a pairing-friendly curve, with the native
// arithmetic needed to evaluate the machine outside a circuit.
type Field struct {
	curve   ecc.ID
	modulus *big.Int
}

// GetFieldFromCurve returns the scalar field of curve.
func GetFieldFromCurve(curve ecc.ID) (*Field, error) {
	if curve == ecc.UNKNOWN {
		return nil, ErrUnsupportedCurve
	}
	m := curve.ScalarField()
	if m == nil || m.Sign() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, curve)
	}
	return &Field{curve: curve, modulus: m}, nil
}

// GetFieldFromName accepts curve names such as "bn254" or "bls12_381".
func GetFieldFromName(name string) (*Field, error) {
	id, err := ecc.IDFromString(strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurve, name)
	}
	return GetFieldFromCurve(id)
}

// Curve returns the curve the field belongs to.
func (f *Field) Curve() ecc.ID {
	return f.curve
}

// Field returns a copy of the modulus.
func (f *Field) Field() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// FieldBitLen returns the bit length of the modulus.
func (f *Field) FieldBitLen() int {
	return f.modulus.BitLen()
}

// Reduce returns x mod p in a new integer.
func (f *Field) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, f.modulus)
}

func (f *Field) Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, f.modulus)
}

func (f *Field) Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, f.modulus)
}

func (f *Field) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, f.modulus)
}

func (f *Field) IsZero(a *big.Int) bool {
	return new(big.Int).Mod(a, f.modulus).Sign() == 0
}

// FromString parses a decimal or 0x-prefixed hexadecimal element. Negative
// values and values not below the modulus are rejected.
func (f *Field) FromString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("parse %q: invalid integer", s)
	}
	if x.Sign() < 0 || x.Cmp(f.modulus) >= 0 {
		return nil, fmt.Errorf("parse %q: %w", s, ErrNotInField)
	}
	return x, nil
}

// FromStrings parses every entry of ss with FromString.
func (f *Field) FromStrings(ss []string) ([]*big.Int, error) {
	res := make([]*big.Int, len(ss))
	for i, s := range ss {
		x, err := f.FromString(s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		res[i] = x
	}
	return res, nil
}
