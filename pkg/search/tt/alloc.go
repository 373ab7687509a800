package tt

// allocate returns a zeroed, contiguous byte slice of at least n bytes,
// huge-page-backed when the host platform supports it. release returns a
// slice obtained from allocate back to the OS; it is a no-op error on
// platforms where allocate falls back to the Go heap.
//
// Platform-specific implementations live in alloc_linux.go and
// alloc_other.go.
