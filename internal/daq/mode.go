package daq

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the operating mode a backend is instantiated in
type Mode int

const (
	ModeNone Mode = iota
	ModePassive
	ModeInline
	ModeReadFile
)

var modeNames = map[Mode]string{
	ModeNone:     "none",
	ModePassive:  "passive",
	ModeInline:   "inline",
	ModeReadFile: "read-file",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode name into a Mode. The empty string is ModeNone.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "passive":
		return ModePassive, nil
	case "inline":
		return ModeInline, nil
	case "read-file", "readfile", "read_file":
		return ModeReadFile, nil
	default:
		return ModeNone, fmt.Errorf("unknown DAQ mode: %s", s)
	}
}

// Flag is a configuration bit merged into the config flag mask
type Flag uint32

const (
	// FlagPromisc opens interfaces in promiscuous mode
	FlagPromisc Flag = 0x1
)

// ParseFlag converts a flag name or a numeric bit value ("0x4") into a Flag
func ParseFlag(s string) (Flag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "promisc" || s == "promiscuous" {
		return FlagPromisc, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("unknown DAQ flag: %s", s)
	}
	return Flag(v), nil
}
