package consensus

import "math/bits"

// BigInt256 is a fixed-width, unsigned 256-bit integer stored as four
// 64-bit limbs, most-significant first (limbs[0] is the high word). Only
// the operators the chain rules actually need are implemented: add, mul
// by a 32-bit scalar or another BigInt256, div by another BigInt256,
// compare, and big-endian byte conversion. Deliberately not a general
// arbitrary-precision type — the fixed width keeps every operation
// constant-stack and side-effect-free, per the retargeter's bounded
// arithmetic (POW_LIMIT * window always fits in 256 bits).
type BigInt256 struct {
	limbs [4]uint64
}

// FromBE32 decodes a big-endian 32-byte array into a BigInt256.
func FromBE32(b [32]byte) BigInt256 {
	var x BigInt256
	x.limbs[0] = beUint64(b[0:8])
	x.limbs[1] = beUint64(b[8:16])
	x.limbs[2] = beUint64(b[16:24])
	x.limbs[3] = beUint64(b[24:32])
	return x
}

// FromU64 builds a BigInt256 from a 64-bit scalar.
func FromU64(v uint64) BigInt256 {
	var x BigInt256
	x.limbs[3] = v
	return x
}

// ToBE32 encodes x as a big-endian 32-byte array.
func (x BigInt256) ToBE32() [32]byte {
	var out [32]byte
	putBE64(out[0:8], x.limbs[0])
	putBE64(out[8:16], x.limbs[1])
	putBE64(out[16:24], x.limbs[2])
	putBE64(out[24:32], x.limbs[3])
	return out
}

func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

func putBE64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

// MaxBigInt256 is 2^256 - 1, the saturation ceiling for cumulative work.
var MaxBigInt256 = BigInt256{limbs: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}

// Cmp returns -1, 0, or 1 as x is less than, equal to, or greater than y.
func (x BigInt256) Cmp(y BigInt256) int {
	for i := 0; i < 4; i++ {
		if x.limbs[i] < y.limbs[i] {
			return -1
		}
		if x.limbs[i] > y.limbs[i] {
			return 1
		}
	}
	return 0
}

func (x BigInt256) IsZero() bool {
	return x.limbs[0] == 0 && x.limbs[1] == 0 && x.limbs[2] == 0 && x.limbs[3] == 0
}

// Add returns x+y, saturating to 2^256-1 on overflow. Used for cumulative
// chainwork, for the retarget window's target sum, and for target+1 in
// TwoPow256DivTargetPlusOne.
func (x BigInt256) Add(y BigInt256) BigInt256 {
	var out BigInt256
	var carry uint64
	out.limbs[3], carry = bits.Add64(x.limbs[3], y.limbs[3], 0)
	out.limbs[2], carry = bits.Add64(x.limbs[2], y.limbs[2], carry)
	out.limbs[1], carry = bits.Add64(x.limbs[1], y.limbs[1], carry)
	out.limbs[0], carry = bits.Add64(x.limbs[0], y.limbs[0], carry)
	if carry != 0 {
		return MaxBigInt256
	}
	return out
}

// MulU32 returns x*v. Overflow beyond 256 bits saturates; this is only
// ever called with bounded operands (retarget actual/timespan, averaging
// a POW_LIMIT-bounded window), so saturation here is a safety net, not an
// expected path.
func (x BigInt256) MulU32(v uint32) BigInt256 {
	return x.mulU64(uint64(v))
}

func (x BigInt256) mulU64(v uint64) BigInt256 {
	var limbs [5]uint64 // limbs[0] is overflow beyond 256 bits
	for i := 3; i >= 0; i-- {
		hi, lo := bits.Mul64(x.limbs[i], v)
		idx := i + 1 // position in limbs (1..4), limbs[0] holds carry-out
		sum, c := bits.Add64(limbs[idx], lo, 0)
		limbs[idx] = sum
		// propagate hi word and any carry up through more significant limbs
		carry := hi + c
		j := idx - 1
		for carry != 0 && j >= 0 {
			sum, c2 := bits.Add64(limbs[j], carry, 0)
			limbs[j] = sum
			carry = c2
			j--
		}
		if carry != 0 {
			// overflowed past limbs[0]; saturate
			return MaxBigInt256
		}
	}
	if limbs[0] != 0 {
		return MaxBigInt256
	}
	return BigInt256{limbs: [4]uint64{limbs[1], limbs[2], limbs[3], limbs[4]}}
}

// Mul256 returns x*y truncated to 256 bits (no saturation check beyond
// that truncation). The retargeter does not call it; its average*actual
// step uses MulU32.
func (x BigInt256) Mul256(y BigInt256) BigInt256 {
	// schoolbook multiplication via 64-bit limbs, keeping only the low
	// 256 bits of the 512-bit product.
	var prod [8]uint64 // prod[7] is least significant
	xs := [4]uint64{x.limbs[3], x.limbs[2], x.limbs[1], x.limbs[0]}
	ys := [4]uint64{y.limbs[3], y.limbs[2], y.limbs[1], y.limbs[0]}
	for i := 0; i < 4; i++ {
		if xs[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(xs[i], ys[j])
			pos := 7 - (i + j)
			sum, c1 := bits.Add64(prod[pos], lo, 0)
			sum, c2 := bits.Add64(sum, carry, 0)
			prod[pos] = sum
			carry = hi + c1 + c2
		}
		// propagate remaining carry into more significant limbs
		k := 7 - (i + 4)
		for carry != 0 && k >= 0 {
			sum, c := bits.Add64(prod[k], carry, 0)
			prod[k] = sum
			carry = c
			k--
		}
	}
	return BigInt256{limbs: [4]uint64{prod[4], prod[5], prod[6], prod[7]}}
}

// DivU32 returns floor(x/v). v must be non-zero.
func (x BigInt256) DivU32(v uint32) BigInt256 {
	var out BigInt256
	var rem uint64
	d := uint64(v)
	for i := 0; i < 4; i++ {
		out.limbs[i], rem = bits.Div64(rem, x.limbs[i], d)
	}
	return out
}

// Div returns floor(x/y). y must be non-zero; division is schoolbook
// long division over the 256-bit value, shift-and-subtract based since
// the spec bounds operands well within 256 bits and a full Knuth
// algorithm isn't warranted at this width.
func (x BigInt256) Div(y BigInt256) BigInt256 {
	if y.IsZero() {
		return BigInt256{}
	}
	if x.Cmp(y) < 0 {
		return BigInt256{}
	}
	var quotient BigInt256
	var remainder BigInt256
	for bit := 255; bit >= 0; bit-- {
		remainder = remainder.shiftLeft1()
		if x.bitAt(bit) {
			remainder.limbs[3] |= 1
		}
		if remainder.Cmp(y) >= 0 {
			remainder = remainder.sub(y)
			quotient.setBit(bit)
		}
	}
	return quotient
}

func (x BigInt256) bitAt(bit int) bool {
	limb := 3 - bit/64
	off := uint(bit % 64)
	return (x.limbs[limb]>>off)&1 == 1
}

func (x *BigInt256) setBit(bit int) {
	limb := 3 - bit/64
	off := uint(bit % 64)
	x.limbs[limb] |= 1 << off
}

func (x BigInt256) shiftLeft1() BigInt256 {
	var out BigInt256
	var carry uint64
	for i := 3; i >= 0; i-- {
		out.limbs[i] = (x.limbs[i] << 1) | carry
		carry = x.limbs[i] >> 63
	}
	return out
}

func (x BigInt256) sub(y BigInt256) BigInt256 {
	var out BigInt256
	var borrow uint64
	out.limbs[3], borrow = bits.Sub64(x.limbs[3], y.limbs[3], 0)
	out.limbs[2], borrow = bits.Sub64(x.limbs[2], y.limbs[2], borrow)
	out.limbs[1], borrow = bits.Sub64(x.limbs[1], y.limbs[1], borrow)
	out.limbs[0], borrow = bits.Sub64(x.limbs[0], y.limbs[0], borrow)
	return out
}

// TwoPow256DivTargetPlusOne computes floor(2^256 / (target+1)), the
// chainwork contribution of a single header at the given target. 2^256
// itself doesn't fit in a 256-bit value, so the division is carried out
// bit-by-bit with an implicit leading numerator bit (bit 256) rather than
// by materializing the numerator. Saturates when target+1 == 1 (i.e.
// target == 0), which never occurs for a valid header but is handled
// defensively since this also backstops the BigInt256 saturation contract.
func TwoPow256DivTargetPlusOne(target BigInt256) BigInt256 {
	denom := target.Add(FromU64(1))
	if denom.Cmp(FromU64(1)) == 0 {
		return MaxBigInt256
	}

	var quotient BigInt256
	var remainder BigInt256

	// Bring down the implicit bit 256 of the numerator (2^256 = 1<<256).
	remainder.limbs[3] = 1
	if remainder.Cmp(denom) >= 0 {
		remainder = remainder.sub(denom)
	}
	for bit := 255; bit >= 0; bit-- {
		// A set top bit means the shifted remainder is at least 2^256,
		// which exceeds any 256-bit denom; sub wraps to the true difference.
		overflow := remainder.limbs[0]>>63 == 1
		remainder = remainder.shiftLeft1()
		if overflow || remainder.Cmp(denom) >= 0 {
			remainder = remainder.sub(denom)
			quotient.setBit(bit)
		}
	}
	return quotient
}
