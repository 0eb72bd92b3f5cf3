// Package module describes pluggable DAQ capture backends and hands out
// non-owning handles to them. A Handle only refers to a Descriptor held by a
// Registry; whoever owns the Registry keeps the descriptor alive.
package module

import (
	"fmt"
	"strings"

	"github.com/google/gopacket/layers"
	"github.com/google/uuid"
)

// TypeFlag describes what a backend is capable of
type TypeFlag uint32

const (
	// TypeFileCapable can read packets from a capture file
	TypeFileCapable TypeFlag = 1 << iota
	// TypeIntfCapable can capture from a network interface
	TypeIntfCapable
	// TypeInlineCapable can forward or drop packets inline
	TypeInlineCapable
	// TypeMultiInstance supports several concurrent instances
	TypeMultiInstance
	// TypeNoUnpriv must be started with elevated privileges
	TypeNoUnpriv
)

var typeNames = []struct {
	flag TypeFlag
	name string
}{
	{TypeFileCapable, "file"},
	{TypeIntfCapable, "interface"},
	{TypeInlineCapable, "inline"},
	{TypeMultiInstance, "multi"},
	{TypeNoUnpriv, "nounpriv"},
}

func (t TypeFlag) String() string {
	var parts []string
	for _, tn := range typeNames {
		if t&tn.flag != 0 {
			parts = append(parts, tn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Descriptor is the static description of a capture backend
type Descriptor struct {
	// Name is the unique backend name (e.g. "pcap", "afpacket")
	Name string
	// Version is the backend API version
	Version uint32
	// Type holds the capability flags
	Type TypeFlag
	// LinkType is the data link type of the packets the backend delivers
	LinkType layers.LinkType
}

// SupportsMode reports whether the backend can run in the named mode
// ("passive", "inline" or "read-file").
func (d Descriptor) SupportsMode(mode string) bool {
	switch mode {
	case "passive":
		return d.Type&TypeIntfCapable != 0
	case "inline":
		return d.Type&TypeInlineCapable != 0
	case "read-file":
		return d.Type&TypeFileCapable != 0
	default:
		return false
	}
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s v%d [%s] linktype=%s", d.Name, d.Version, d.Type, d.LinkType)
}

// Handle is a borrowed reference to a registered Descriptor.
// The zero Handle refers to nothing.
type Handle struct {
	id uuid.UUID
}

// IsZero reports whether h refers to nothing
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

func (h Handle) String() string {
	if h.IsZero() {
		return "<none>"
	}
	return h.id.String()
}
