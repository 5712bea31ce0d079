package session

// DefaultSeed replaces a zero seed, which would make xorshift emit zeros
// forever.
const DefaultSeed uint32 = 0x9E3779B9

// Xorshift32 is Marsaglia's 32-bit xorshift generator. It is a plain value
// so a session owns its own sequence.
type Xorshift32 struct {
	State uint32 `json:"state"`
}

func NewXorshift32(seed uint32) Xorshift32 {
	if seed == 0 {
		seed = DefaultSeed
	}
	return Xorshift32{State: seed}
}

// Next advances the generator and returns the new state.
func (x *Xorshift32) Next() uint32 {
	if x.State == 0 {
		x.State = DefaultSeed
	}
	v := x.State
	v ^= v << 13
	v ^= v >> 17
	v ^= v << 5
	x.State = v
	return v
}

// Range returns a value in [lo, hi]. hi below lo is treated as lo.
func (x *Xorshift32) Range(lo, hi uint32) uint32 {
	if hi <= lo {
		x.Next()
		return lo
	}
	span := uint64(hi-lo) + 1
	return lo + uint32(uint64(x.Next())%span)
}
