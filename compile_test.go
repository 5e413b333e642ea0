package oblivious

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/stretchr/testify/require"
)

type cubicCircuit struct {
	X frontend.Variable
	Y frontend.Variable `gnark:",public"`
}

func (c *cubicCircuit) Define(api frontend.API) error {
	x3 := api.Mul(c.X, c.X, c.X)
	api.AssertIsEqual(c.Y, api.Add(x3, c.X, 5))
	return nil
}

func TestBackendFromString(t *testing.T) {
	b, err := BackendFromString("Groth16")
	require.NoError(t, err)
	require.Equal(t, Groth16, b)
	b, err = BackendFromString("plonk")
	require.NoError(t, err)
	require.Equal(t, Plonk, b)
	_, err = BackendFromString("stark")
	require.ErrorIs(t, err, ErrUnknownBackend)
	require.Equal(t, "backend(7)", Backend(7).String())
}

func TestCompileAndCheck(t *testing.T) {
	for _, backend := range []Backend{Groth16, Plonk} {
		t.Run(backend.String(), func(t *testing.T) {
			cr, err := Compile(ecc.BN254, backend, &cubicCircuit{})
			require.NoError(t, err)
			require.Equal(t, ecc.BN254, cr.Curve())
			require.Equal(t, backend, cr.Backend())
			stats := cr.GetStats()
			require.Positive(t, stats.NbConstraints)
			require.Equal(t, 1, stats.NbSecret)

			require.NoError(t, cr.Check(&cubicCircuit{X: 3, Y: 35}))
			require.ErrorIs(t, cr.Check(&cubicCircuit{X: 3, Y: 36}), ErrNotSatisfied)
		})
	}
	_, err := Compile(ecc.BN254, Backend(9), &cubicCircuit{})
	require.ErrorIs(t, err, ErrUnknownBackend)
	_, err = ReadVerifyingKey(ecc.BN254, Backend(9), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrUnknownBackend)
	_, err = ReadProof(ecc.BN254, Backend(9), &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestProveVerify(t *testing.T) {
	for _, backend := range []Backend{Groth16, Plonk} {
		t.Run(backend.String(), func(t *testing.T) {
			cr, err := Compile(ecc.BN254, backend, &cubicCircuit{})
			require.NoError(t, err)
			keys, err := cr.Setup()
			require.NoError(t, err)

			proof, err := cr.Prove(keys, &cubicCircuit{X: 3, Y: 35})
			require.NoError(t, err)
			require.NoError(t, keys.Verify(proof))

			var proofBuf, publicBuf, vkBuf bytes.Buffer
			_, err = proof.WriteTo(&proofBuf)
			require.NoError(t, err)
			_, err = proof.PublicWitness().WriteTo(&publicBuf)
			require.NoError(t, err)
			_, err = keys.WriteVerifyingKey(&vkBuf)
			require.NoError(t, err)

			vk, err := ReadVerifyingKey(ecc.BN254, backend, &vkBuf)
			require.NoError(t, err)
			read, err := ReadProof(ecc.BN254, backend, &proofBuf, &publicBuf)
			require.NoError(t, err)
			require.NoError(t, vk.Verify(read))

			wrong, err := frontend.NewWitness(&cubicCircuit{Y: 36}, ecc.BN254.ScalarField(), frontend.PublicOnly())
			require.NoError(t, err)
			require.Error(t, keys.Verify(proof.WithPublic(wrong)))

			_, err = cr.Prove(keys, &cubicCircuit{X: 3, Y: 36})
			require.Error(t, err)
		})
	}
}
