//go:build linux

package tt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// allocate mmaps n bytes of anonymous, zeroed memory and advises the
// kernel to back it with transparent huge pages where possible. The advice
// is best-effort: its error is ignored, since huge pages are a throughput
// optimization and not required for correctness.
func allocate(n int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("tt: mmap %v bytes: %w", n, err)
	}
	_ = unix.Madvise(buf, unix.MADV_HUGEPAGE)
	return buf, nil
}

func release(buf []byte) error {
	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("tt: munmap: %w", err)
	}
	return nil
}
