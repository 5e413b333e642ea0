package utils

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"
)

func TestBufLayout(t *testing.T) {
	o := NewOutputBuf(254)
	o.AppendUint32(0x01020304)
	o.AppendBigInt(big.NewInt(0x0506))
	require.Equal(t, 4+32, len(o.Bytes()))
	require.Equal(t, []byte{4, 3, 2, 1, 6, 5, 0}, o.Bytes()[:7])

	i := NewInputBuf(o.Bytes(), 254)
	require.Equal(t, uint32(0x01020304), i.ReadUint32())
	require.Equal(t, int64(0x0506), i.ReadBigInt().Int64())
	require.Zero(t, i.Len())
}

func TestBufElements(t *testing.T) {
	for _, curve := range []ecc.ID{ecc.BN254, ecc.BLS12_381, ecc.BW6_761} {
		t.Run(curve.String(), func(t *testing.T) {
			p := curve.ScalarField()
			max := new(big.Int).Sub(p, big.NewInt(1))
			o := NewOutputBuf(p.BitLen())
			o.AppendBigInt(max)
			o.AppendUint32(1 << 30)
			o.AppendBigInt(big.NewInt(0))
			require.Equal(t, 2*ElementBytes(p.BitLen())+4, len(o.Bytes()))

			i := NewInputBuf(o.Bytes(), p.BitLen())
			require.Equal(t, 0, max.Cmp(i.ReadBigInt()))
			require.Equal(t, uint32(1<<30), i.ReadUint32())
			require.Zero(t, i.ReadBigInt().Sign())
			require.Zero(t, i.Len())
		})
	}
}

func TestBufPanics(t *testing.T) {
	o := NewOutputBuf(8)
	require.Panics(t, func() { o.AppendBigInt(big.NewInt(256)) })
	require.Panics(t, func() { o.AppendBigInt(big.NewInt(-1)) })
	require.Panics(t, func() { NewInputBuf([]byte{1, 2}, 8).ReadUint32() })
}
