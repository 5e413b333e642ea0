package utils

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// ElementBytes returns the width of a serialised element of a field with
// modulus of fieldBits bits.
func ElementBytes(fieldBits int) int {
	return (fieldBits + 7) / 8
}

// OutputBuf serialises integers little-endian, field elements at a fixed width.
type OutputBuf struct {
	elementBytes int
	buf          []byte
}

func NewOutputBuf(fieldBits int) *OutputBuf {
	return &OutputBuf{elementBytes: ElementBytes(fieldBits)}
}

func (o *OutputBuf) AppendBigInt(x *big.Int) {
	b := x.Bytes()
	if x.Sign() < 0 || len(b) > o.elementBytes {
		panic(fmt.Sprintf("element %s does not fit in %d bytes", x, o.elementBytes))
	}
	zbuf := make([]byte, o.elementBytes)
	for i := 0; i < len(b); i++ {
		zbuf[i] = b[len(b)-i-1]
	}
	o.buf = append(o.buf, zbuf...)
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

// InputBuf reads what OutputBuf writes. Reads past the end panic.
type InputBuf struct {
	elementBytes int
	buf          []byte
}

func NewInputBuf(buf []byte, fieldBits int) *InputBuf {
	return &InputBuf{elementBytes: ElementBytes(fieldBits), buf: buf}
}

func (i *InputBuf) ReadUint32() uint32 {
	x := binary.LittleEndian.Uint32(i.buf[:4])
	i.buf = i.buf[4:]
	return x
}

func (i *InputBuf) ReadBigInt() *big.Int {
	n := i.elementBytes
	zbuf := make([]byte, n)
	for j := 0; j < n; j++ {
		zbuf[j] = i.buf[n-1-j]
	}
	x := new(big.Int).SetBytes(zbuf)
	i.buf = i.buf[n:]
	return x
}

// Len returns the number of unread bytes.
func (i *InputBuf) Len() int {
	return len(i.buf)
}
