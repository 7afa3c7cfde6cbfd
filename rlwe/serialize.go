package rlwe

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/latticeforge/ringpack/ring"
)

// WriteTo serializes raw as a sequence of little-endian uint64s: a twist
// count, then for each twist (in CdksParam.RequiredTwists order) the twist
// value, the limb count, and every A_i, B_i polynomial's N coefficients in
// turn.
func (raw *CdksKeyRaw) WriteTo(param CdksParam, w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	twists := param.RequiredTwists()
	if err := writeUint64(bw, &written, uint64(len(twists))); err != nil {
		return written, err
	}

	for _, t := range twists {
		ak, ok := raw.Keys[t]
		if !ok {
			return written, fmt.Errorf("%w: raw key missing twist %d", ErrDeserializationFailed, t)
		}

		if err := writeUint64(bw, &written, t); err != nil {
			return written, err
		}
		if err := writeUint64(bw, &written, uint64(len(ak.A))); err != nil {
			return written, err
		}
		for i := range ak.A {
			if err := writePoly(bw, &written, ak.A[i]); err != nil {
				return written, err
			}
			if err := writePoly(bw, &written, ak.B[i]); err != nil {
				return written, err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

// ReadCdksKeyRawFrom reads a new CdksKeyRaw for param from r, failing with
// ErrDeserializationFailed on any twist, limb, or degree mismatch against
// param rather than silently truncating or padding.
func ReadCdksKeyRawFrom(param CdksParam, r io.Reader) (*CdksKeyRaw, error) {
	br := bufio.NewReader(r)
	N := param.N()
	level := param.Level()

	numTwists, err := readUint64(br)
	if err != nil {
		return nil, err
	}
	expected := param.RequiredTwists()
	if numTwists != uint64(len(expected)) {
		return nil, fmt.Errorf("%w: expected %d twists, stream has %d", ErrDeserializationFailed, len(expected), numTwists)
	}

	out := &CdksKeyRaw{Keys: make(map[uint64]*AutoKeyRaw, numTwists)}

	for idx := uint64(0); idx < numTwists; idx++ {
		t, err := readUint64(br)
		if err != nil {
			return nil, err
		}
		if t != expected[idx] {
			return nil, fmt.Errorf("%w: twist %d out of canonical order (expected %d, got %d)",
				ErrDeserializationFailed, idx, expected[idx], t)
		}

		limbCount, err := readUint64(br)
		if err != nil {
			return nil, err
		}
		if limbCount != uint64(level) {
			return nil, fmt.Errorf("%w: twist %d has %d limbs, param expects %d", ErrDeserializationFailed, t, limbCount, level)
		}

		a := make([]*ring.Poly, level)
		b := make([]*ring.Poly, level)
		for i := 0; i < level; i++ {
			pa, err := readPoly(br, N)
			if err != nil {
				return nil, err
			}
			pb, err := readPoly(br, N)
			if err != nil {
				return nil, err
			}
			a[i], b[i] = pa, pb
		}

		out.Keys[t] = &AutoKeyRaw{Twist: t, A: a, B: b}
	}

	return out, nil
}

func writeUint64(w *bufio.Writer, written *int64, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	n, err := w.Write(buf[:])
	*written += int64(n)
	return err
}

func writePoly(w *bufio.Writer, written *int64, p *ring.Poly) error {
	for _, c := range p.Coeffs {
		if err := writeUint64(w, written, c); err != nil {
			return err
		}
	}
	return nil
}

func readUint64(r *bufio.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrDeserializationFailed, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func readPoly(r *bufio.Reader, n int) (*ring.Poly, error) {
	p := ring.NewPoly(n)
	for i := 0; i < n; i++ {
		c, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		p.Coeffs[i] = c
	}
	return p, nil
}
