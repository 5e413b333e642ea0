package oblivious

import (
	"fmt"
	"io"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/test/unsafekzg"
)

// Keys is the proving and verifying key pair of a compiled circuit.
type Keys struct {
	backend Backend

	groth16PK groth16.ProvingKey
	groth16VK groth16.VerifyingKey
	plonkPK   plonk.ProvingKey
	plonkVK   plonk.VerifyingKey
}

// Proof is a proof together with the public witness it was produced for.
type Proof struct {
	backend Backend
	groth16 groth16.Proof
	plonk   plonk.Proof
	public  witness.Witness
}

// Setup runs the key generation of the backend. PLONK uses an SRS generated
// in process, which is only suitable for testing.
func (c *CompileResult) Setup() (*Keys, error) {
	log := logger.Logger()
	start := time.Now()
	keys := &Keys{backend: c.backend}
	switch c.backend {
	case Groth16:
		pk, vk, err := groth16.Setup(c.cs)
		if err != nil {
			return nil, fmt.Errorf("groth16 setup: %w", err)
		}
		keys.groth16PK, keys.groth16VK = pk, vk
	case Plonk:
		srs, srsLagrange, err := unsafekzg.NewSRS(c.cs)
		if err != nil {
			return nil, fmt.Errorf("plonk srs: %w", err)
		}
		pk, vk, err := plonk.Setup(c.cs, srs, srsLagrange)
		if err != nil {
			return nil, fmt.Errorf("plonk setup: %w", err)
		}
		keys.plonkPK, keys.plonkVK = pk, vk
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, c.backend)
	}
	log.Info().Str("backend", c.backend.String()).Dur("took", time.Since(start)).Msg("setup")
	return keys, nil
}

// Prove proves assignment with keys.
func (c *CompileResult) Prove(keys *Keys, assignment frontend.Circuit) (*Proof, error) {
	if keys.backend != c.backend {
		return nil, fmt.Errorf("%w: keys for %s, circuit for %s", ErrBackendMismatch, keys.backend, c.backend)
	}
	full, err := c.GetWitness(assignment)
	if err != nil {
		return nil, err
	}
	public, err := full.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness: %w", err)
	}

	log := logger.Logger()
	start := time.Now()
	proof := &Proof{backend: c.backend, public: public}
	switch c.backend {
	case Groth16:
		proof.groth16, err = groth16.Prove(c.cs, keys.groth16PK, full)
	case Plonk:
		proof.plonk, err = plonk.Prove(c.cs, keys.plonkPK, full)
	}
	if err != nil {
		return nil, fmt.Errorf("%s prove: %w", c.backend, err)
	}
	log.Info().Str("backend", c.backend.String()).Dur("took", time.Since(start)).Msg("proved")
	return proof, nil
}

// Verify checks proof against its public witness.
func (k *Keys) Verify(proof *Proof) error {
	if k.backend != proof.backend {
		return fmt.Errorf("%w: keys for %s, proof for %s", ErrBackendMismatch, k.backend, proof.backend)
	}
	var err error
	switch k.backend {
	case Groth16:
		err = groth16.Verify(proof.groth16, k.groth16VK, proof.public)
	case Plonk:
		err = plonk.Verify(proof.plonk, k.plonkVK, proof.public)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownBackend, k.backend)
	}
	if err != nil {
		return fmt.Errorf("%s verify: %w", k.backend, err)
	}
	return nil
}

// WithPublic returns a copy of the proof bound to another public witness.
func (p *Proof) WithPublic(public witness.Witness) *Proof {
	cp := *p
	cp.public = public
	return &cp
}

// PublicWitness returns the public witness of the proof.
func (p *Proof) PublicWitness() witness.Witness {
	return p.public
}

// WriteTo writes the serialised proof.
func (p *Proof) WriteTo(w io.Writer) (int64, error) {
	switch p.backend {
	case Groth16:
		return p.groth16.WriteTo(w)
	case Plonk:
		return p.plonk.WriteTo(w)
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownBackend, p.backend)
}

// WriteVerifyingKey writes the serialised verifying key.
func (k *Keys) WriteVerifyingKey(w io.Writer) (int64, error) {
	switch k.backend {
	case Groth16:
		return k.groth16VK.WriteTo(w)
	case Plonk:
		return k.plonkVK.WriteTo(w)
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownBackend, k.backend)
}

// ReadVerifyingKey reads a key written by WriteVerifyingKey. The returned
// keys can only verify.
func ReadVerifyingKey(curve ecc.ID, backend Backend, r io.Reader) (*Keys, error) {
	keys := &Keys{backend: backend}
	var err error
	switch backend {
	case Groth16:
		keys.groth16VK = groth16.NewVerifyingKey(curve)
		_, err = keys.groth16VK.ReadFrom(r)
	case Plonk:
		keys.plonkVK = plonk.NewVerifyingKey(curve)
		_, err = keys.plonkVK.ReadFrom(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s verifying key: %w", backend, err)
	}
	return keys, nil
}

// ReadProof reads a proof written by WriteTo together with the public
// witness written from PublicWitness.
func ReadProof(curve ecc.ID, backend Backend, proof, public io.Reader) (*Proof, error) {
	p := &Proof{backend: backend}
	var err error
	switch backend {
	case Groth16:
		p.groth16 = groth16.NewProof(curve)
		_, err = p.groth16.ReadFrom(proof)
	case Plonk:
		p.plonk = plonk.NewProof(curve)
		_, err = p.plonk.ReadFrom(proof)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s proof: %w", backend, err)
	}
	if p.public, err = witness.New(curve.ScalarField()); err != nil {
		return nil, err
	}
	if _, err := p.public.ReadFrom(public); err != nil {
		return nil, fmt.Errorf("read public witness: %w", err)
	}
	return p, nil
}
