// Package config defines the run-time options recognized by the core
// algorithm and the coordinator, and the validation that turns a
// misconfigured run into a configuration error (§7 kind 1) before any
// worker starts.
// See doc.go for complete package documentation.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/slices"

	"github.com/dreamware/reachcheck/internal/queue"
	"github.com/dreamware/reachcheck/internal/sts"
)

// validOrders and validCoveringModes enumerate the only strings Validate
// accepts for the corresponding field, the empty string always meaning
// "use the default".
var (
	validOrders        = []string{"", "BFS", "DFS"}
	validCoveringModes = []string{"", string(sts.CoveringInclusion), string(sts.CoveringSimulation)}
)

// Options holds every configuration parameter named in the external
// interface. The zero value is not valid; callers must either populate
// it explicitly (e.g. from cobra flags) or via Load, then call Validate.
type Options struct {
	Threads         int      `toml:"threads"`
	Order           string   `toml:"order"`
	BucketCount     int      `toml:"bucket_count"`
	BlockSize       int      `toml:"block_size"`
	NotifyEvery     uint64   `toml:"notify_every"`
	AcceptingLabels []string `toml:"accepting_labels"`
	CoveringMode    string   `toml:"covering_mode"`
}

// Default returns the Options a run should use when the caller overrides
// nothing: a single thread, breadth-first exploration, a bucket count
// chosen to comfortably outnumber any realistic thread count, and no
// progress notifications.
func Default() Options {
	return Options{
		Threads:      1,
		Order:        "BFS",
		BucketCount:  1 << 15,
		BlockSize:    4096,
		NotifyEvery:  0,
		CoveringMode: string(sts.CoveringInclusion),
	}
}

// Load decodes Options from a TOML file at path, starting from Default
// and overriding only the fields the file sets.
func Load(path string) (Options, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return opts, nil
}

// Write serializes opts as TOML to path, matching the format Load
// expects, chiefly useful for --dump-config style diagnostics.
func Write(path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(opts); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// QueueOrder translates the Order string into a queue.Order, defaulting
// to FIFO (BFS) for any value other than the recognized "DFS".
func (o Options) QueueOrder() queue.Order {
	if o.Order == "DFS" {
		return queue.LIFO
	}
	return queue.FIFO
}

// StsCoveringMode translates the CoveringMode string into an sts.CoveringMode,
// defaulting to inclusion.
func (o Options) StsCoveringMode() sts.CoveringMode {
	if o.CoveringMode == string(sts.CoveringSimulation) {
		return sts.CoveringSimulation
	}
	return sts.CoveringInclusion
}

// Validate raises a configuration error for any option value the core
// cannot run with. It is called once, before any worker goroutine is
// launched, per §7 kind 1.
func (o Options) Validate() error {
	if o.Threads < 1 {
		return fmt.Errorf("config: threads must be >= 1, got %d", o.Threads)
	}
	if !slices.Contains(validOrders, o.Order) {
		return fmt.Errorf("config: order must be BFS or DFS, got %q", o.Order)
	}
	if o.BucketCount < 1 {
		return fmt.Errorf("config: bucket_count must be >= 1, got %d", o.BucketCount)
	}
	if o.BlockSize < 0 {
		return fmt.Errorf("config: block_size must be >= 0, got %d", o.BlockSize)
	}
	if !slices.Contains(validCoveringModes, o.CoveringMode) {
		return fmt.Errorf("config: unrecognized covering_mode %q", o.CoveringMode)
	}
	return nil
}
