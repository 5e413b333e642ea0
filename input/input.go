// Package input reads and writes step witnesses: a memory image and the
// initial registers, as JSON or CBOR.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/PolyhedraZK/ObliviousCairo/cairo"
	"github.com/PolyhedraZK/ObliviousCairo/field"
)

var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrEmptyMemory   = errors.New("memory is empty")
)

type Format int

const (
	JSON Format = iota
	CBOR
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CBOR:
		return "cbor"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".cbor":
		return CBOR, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// StepInput is a witness as stored on disk. Values are decimal or
// 0x-prefixed hexadecimal strings, so that elements wider than 64 bits
// survive both encodings.
type StepInput struct {
	Memory []string `json:"memory" cbor:"1,keyasint"`
	PC     string   `json:"pc" cbor:"2,keyasint"`
	AP     string   `json:"ap" cbor:"3,keyasint"`
	FP     string   `json:"fp" cbor:"4,keyasint"`
}

// New encodes memory and s.
func New(memory []*big.Int, s cairo.State) *StepInput {
	in := &StepInput{
		Memory: make([]string, len(memory)),
		PC:     s.PC.String(),
		AP:     s.AP.String(),
		FP:     s.FP.String(),
	}
	for i, x := range memory {
		in.Memory[i] = x.String()
	}
	return in
}

// Parse decodes the witness into field elements of f.
func (in *StepInput) Parse(f *field.Field) ([]*big.Int, cairo.State, error) {
	if len(in.Memory) == 0 {
		return nil, cairo.State{}, ErrEmptyMemory
	}
	memory, err := f.FromStrings(in.Memory)
	if err != nil {
		return nil, cairo.State{}, fmt.Errorf("memory: %w", err)
	}
	regs := make([]*big.Int, 3)
	for i, r := range []struct{ name, value string }{{"pc", in.PC}, {"ap", in.AP}, {"fp", in.FP}} {
		if regs[i], err = f.FromString(r.value); err != nil {
			return nil, cairo.State{}, fmt.Errorf("%s: %w", r.name, err)
		}
	}
	return memory, cairo.State{PC: regs[0], AP: regs[1], FP: regs[2]}, nil
}

// Read decodes a witness in format from r.
func Read(r io.Reader, format Format) (*StepInput, error) {
	in := new(StepInput)
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(in)
	case CBOR:
		err = cbor.NewDecoder(r).Decode(in)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return in, nil
}

// Write encodes in to w.
func Write(w io.Writer, format Format, in *StepInput) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	case CBOR:
		return cbor.NewEncoder(w).Encode(in)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Load reads the witness file at path, its format given by the extension.
func Load(path string) (*StepInput, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	in, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Save writes in to path, its format given by the extension.
func Save(path string, in *StepInput) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, in); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
