// Package config centralizes the seven run-time parameters the external
// interface recognizes (threads, order, bucket_count, block_size,
// notify_every, accepting_labels, covering_mode) behind one Options
// struct, loadable from TOML via github.com/BurntSushi/toml the same
// way the rest of the pack's services load theirs.
//
// # Overview
//
// Default returns a conservative single-threaded configuration; Load
// overlays a TOML file on top of it; Validate is the sole gate between a
// caller-supplied Options and the coordinator — it never starts a
// worker goroutine against a value it has not first validated.
//
// # See Also
//
//   - internal/coordinator: the only consumer of a validated Options.
//   - cmd/reachcheck: translates cobra flags into an Options value.
package config
