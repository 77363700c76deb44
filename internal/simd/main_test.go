package simd

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

// TestMain prints which kernel family is active before running tests.
func TestMain(m *testing.M) {
	fmt.Printf("=== SIMD ISA Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("%s=%q\n", OverrideEnv, os.Getenv(OverrideEnv))
	fmt.Printf("Active ISA: %s\n", ActiveISA())
	fmt.Printf("Kernels: %s\n", ActiveKernels())
	fmt.Printf("Override: %v\n", IsOverridden())
	fmt.Printf("============================\n\n")

	os.Exit(m.Run())
}
