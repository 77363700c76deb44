// Package simd provides the word kernels behind candidate bit fields.
//
// The kernels are pure Go. CPU feature detection (golang.org/x/sys/cpu)
// picks the unroll width: CPUs with 512-bit or scalable vector units
// (AVX-512, SVE2) get the 8-word Unroll8 family, all others the 4-word
// Unroll4 family. Set TILEWAVE_SIMD=generic to force Unroll4.
//
// # Detected Features
//
//   - x86-64: AVX-512, AVX2
//   - ARM64: NEON, SVE2
//
// # Operations
//
//   - AndWords, OrWords: in-place lane-wise bit operations
//   - PopcountWords: total set bits
package simd
