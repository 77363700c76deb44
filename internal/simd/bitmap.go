package simd

import "math/bits"

// ==============================================================================
// Word Kernels
// ==============================================================================
//
// These operations back the bitfield package. They operate on []uint64
// lanes holding tile or edge candidate bits. All kernels are pure Go and
// differ only in unroll width: Unroll4 is the default, Unroll8 is installed
// on CPUs with 512-bit or scalable vector units, where the compiler keeps
// more words in flight.

// Kernels names a kernel family.
type Kernels string

const (
	// Unroll4 processes 4 words per loop step.
	Unroll4 Kernels = "unroll4"
	// Unroll8 processes 8 words per loop step.
	Unroll8 Kernels = "unroll8"
)

// activeKernels is the installed family.
var activeKernels = Unroll4

// Kernel function pointers. Unroll4 is the default; installKernels
// overrides them once the active ISA is known.
var (
	kernelAndWords      = andWordsUnroll4
	kernelOrWords       = orWordsUnroll4
	kernelPopcountWords = popcountWordsUnroll4
)

// AndWords performs dst[i] &= src[i] for all words of dst.
func AndWords(dst, src []uint64) {
	kernelAndWords(dst, src[:len(dst)])
}

// OrWords performs dst[i] |= src[i] for all words of dst.
func OrWords(dst, src []uint64) {
	kernelOrWords(dst, src[:len(dst)])
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	return kernelPopcountWords(words)
}

// ActiveKernels returns the installed kernel family.
func ActiveKernels() Kernels {
	return activeKernels
}

// kernelsFor returns the kernel family used on isa.
func kernelsFor(isa ISA) Kernels {
	switch isa {
	case AVX512, SVE2:
		return Unroll8
	default:
		return Unroll4
	}
}

// installKernels selects kernels for the given ISA.
func installKernels(isa ISA) {
	activeKernels = kernelsFor(isa)
	switch activeKernels {
	case Unroll8:
		kernelAndWords = andWordsUnroll8
		kernelOrWords = orWordsUnroll8
		kernelPopcountWords = popcountWordsUnroll8
	default:
		kernelAndWords = andWordsUnroll4
		kernelOrWords = orWordsUnroll4
		kernelPopcountWords = popcountWordsUnroll4
	}
}

// ==============================================================================
// Unroll4 implementations
// ==============================================================================

func andWordsUnroll4(dst, src []uint64) {
	// Process 4 words at a time (unrolled)
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &= src[i]
		dst[i+1] &= src[i+1]
		dst[i+2] &= src[i+2]
		dst[i+3] &= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &= src[i]
	}
}

func orWordsUnroll4(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] |= src[i]
		dst[i+1] |= src[i+1]
		dst[i+2] |= src[i+2]
		dst[i+3] |= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] |= src[i]
	}
}

func popcountWordsUnroll4(words []uint64) int {
	count := 0
	// Process 4 words at a time
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}

// ==============================================================================
// Unroll8 implementations (8 words = 512 bits per step)
// ==============================================================================

func andWordsUnroll8(dst, src []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := dst[i : i+8 : i+8]
		s := src[i : i+8 : i+8]
		d[0] &= s[0]
		d[1] &= s[1]
		d[2] &= s[2]
		d[3] &= s[3]
		d[4] &= s[4]
		d[5] &= s[5]
		d[6] &= s[6]
		d[7] &= s[7]
	}
	andWordsUnroll4(dst[i:], src[i:])
}

func orWordsUnroll8(dst, src []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := dst[i : i+8 : i+8]
		s := src[i : i+8 : i+8]
		d[0] |= s[0]
		d[1] |= s[1]
		d[2] |= s[2]
		d[3] |= s[3]
		d[4] |= s[4]
		d[5] |= s[5]
		d[6] |= s[6]
		d[7] |= s[7]
	}
	orWordsUnroll4(dst[i:], src[i:])
}

func popcountWordsUnroll8(words []uint64) int {
	count := 0
	i := 0
	for ; i+8 <= len(words); i += 8 {
		w := words[i : i+8 : i+8]
		count += bits.OnesCount64(w[0]) + bits.OnesCount64(w[1]) +
			bits.OnesCount64(w[2]) + bits.OnesCount64(w[3]) +
			bits.OnesCount64(w[4]) + bits.OnesCount64(w[5]) +
			bits.OnesCount64(w[6]) + bits.OnesCount64(w[7])
	}
	return count + popcountWordsUnroll4(words[i:])
}
