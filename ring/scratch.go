package ring

// ScratchSpace is a bump allocator for uint64 polynomial coefficient
// buffers. The packer's recursive merge needs a new scratch Poly at every
// level of the tree; rather than letting each level allocate and discard
// its own slice, ScratchSpace hands out slices of a single backing array
// and resets the cursor once the caller is done with a round.
type ScratchSpace struct {
	n       int
	backing []uint64
	off     int
}

// NewScratchSpace preallocates room for capacity polynomials of degree N.
func NewScratchSpace(N, capacity int) *ScratchSpace {
	return &ScratchSpace{
		n:       N,
		backing: make([]uint64, N*capacity),
	}
}

// Alloc returns a zeroed Poly backed by the next unused slice. If the pool
// is exhausted it first grows the backing array; Polys returned before the
// growth keep the old array and are no longer part of the pool, which is
// why Alloc is only used for short-lived scratch within one packing call.
func (s *ScratchSpace) Alloc() *Poly {
	if s.off+s.n > len(s.backing) {
		grown := make([]uint64, 2*(len(s.backing)+s.n))
		copy(grown, s.backing)
		s.backing = grown
	}
	buf := s.backing[s.off : s.off+s.n : s.off+s.n]
	for i := range buf {
		buf[i] = 0
	}
	s.off += s.n
	return &Poly{Coeffs: buf}
}

// Reset rewinds the allocator so its whole backing array can be reused by
// the next call into the packer. Every Poly handed out since the last Reset
// (or since construction) becomes invalid.
func (s *ScratchSpace) Reset() {
	s.off = 0
}
