package capture

import (
	"fmt"
	"strconv"
	"time"

	"EnigmaNetz/Enigma-Go-DAQ/internal/daq"
)

// Well-known backend variables that capture options are read from
const (
	VarFilter     = "filter"
	VarBufferSize = "buffer_size_mb"
)

// CaptureOptions defines configuration options for a capture session
type CaptureOptions struct {
	// Interface is the network interface(s) or capture file to read from
	Interface string

	// Filter is a BPF filter expression to filter captured packets
	// Example: "port 53" for DNS traffic only
	Filter string

	// SnapLen is the maximum number of bytes to capture per packet
	// If zero, the backend default is used
	SnapLen int

	// ReadTimeout bounds each read in the acquire loop
	// If zero, reads block until a packet arrives
	ReadTimeout time.Duration

	// BufferSize is the kernel buffer size in MB for packet capture
	// If zero, system default is used
	BufferSize int

	// Promiscuous opens the interface in promiscuous mode
	Promiscuous bool

	// Mode is the DAQ mode the backend runs in
	Mode daq.Mode
}

// OptionsFromDAQ derives capture options from a DAQ config. Variables the
// capture layer does not know about are left for the backend.
func OptionsFromDAQ(cfg *daq.Config) (CaptureOptions, error) {
	if cfg == nil {
		return CaptureOptions{}, fmt.Errorf("capture options: %w", daq.ErrInvalidArgument)
	}

	opts := CaptureOptions{
		Interface:   cfg.Input(),
		SnapLen:     cfg.Snaplen(),
		ReadTimeout: time.Duration(cfg.Timeout()) * time.Millisecond,
		Promiscuous: cfg.Flags()&daq.FlagPromisc != 0,
		Mode:        cfg.Mode(),
	}

	if filter, ok := cfg.Variable(VarFilter); ok {
		opts.Filter = filter
	}
	if size, ok := cfg.Variable(VarBufferSize); ok {
		n, err := strconv.Atoi(size)
		if err != nil || n < 0 {
			return CaptureOptions{}, fmt.Errorf("invalid %s %q: must be a non-negative integer", VarBufferSize, size)
		}
		opts.BufferSize = n
	}

	return opts, nil
}
