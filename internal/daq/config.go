// Package daq holds the configuration a DAQ capture backend is instantiated
// with: a borrowed module handle, scalar capture settings and an ordered set
// of backend variables.
//
// Getters are safe to call on a nil *Config and return zero values. Setters
// on a nil *Config return ErrInvalidArgument. A Config is not safe for
// concurrent use.
package daq

import (
	"fmt"
	"strings"

	"EnigmaNetz/Enigma-Go-DAQ/internal/dict"
	"EnigmaNetz/Enigma-Go-DAQ/internal/logger"
	"EnigmaNetz/Enigma-Go-DAQ/internal/module"
)

// Config is the configuration a backend is instantiated with
type Config struct {
	module  module.Handle // borrowed, never released by Config
	input   string        // interface(s) or file to open
	snaplen int           // maximum packet capture length
	timeout uint          // acquire read timeout in milliseconds (0 = unlimited)
	mode    Mode
	flags   Flag
	vars    *dict.Dict

	log *logger.Logger
}

// Variable is one backend variable. HasValue is false for key-only variables.
type Variable struct {
	Key      string
	Value    string
	HasValue bool
}

func (v Variable) String() string {
	if !v.HasValue {
		return v.Key
	}
	return v.Key + "=" + v.Value
}

// Option customizes a new Config
type Option func(*options)

type options struct {
	log          *logger.Logger
	maxVariables int
}

// WithLogger logs variable changes at debug level
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithMaxVariables limits how many variables can be stored. Setting more
// fails with ErrOutOfMemory.
func WithMaxVariables(n int) Option {
	return func(o *options) {
		o.maxVariables = n
	}
}

// New creates an empty config bound to the module referred to by h.
// The caller keeps the module registered for the life of the config.
func New(h module.Handle, opts ...Option) (*Config, error) {
	if h.IsZero() {
		return nil, fmt.Errorf("new config: no module: %w", ErrInvalidArgument)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Config{
		module: h,
		vars:   dict.New(dict.WithMaxEntries(o.maxVariables)),
		log:    o.log,
	}, nil
}

// Module returns the module handle, or the zero handle for a nil config
func (c *Config) Module() module.Handle {
	if c == nil {
		return module.Handle{}
	}
	return c.module
}

// SetInput replaces the input. An empty string clears it.
func (c *Config) SetInput(input string) error {
	if c == nil {
		return fmt.Errorf("set input: %w", ErrInvalidArgument)
	}
	c.input = input
	return nil
}

// Input returns the configured input, or "" when unset
func (c *Config) Input() string {
	if c == nil {
		return ""
	}
	return c.input
}

// SetSnaplen sets the maximum capture length. It is not range checked.
func (c *Config) SetSnaplen(snaplen int) error {
	if c == nil {
		return fmt.Errorf("set snaplen: %w", ErrInvalidArgument)
	}
	c.snaplen = snaplen
	return nil
}

func (c *Config) Snaplen() int {
	if c == nil {
		return 0
	}
	return c.snaplen
}

// SetTimeout sets the read timeout in milliseconds
func (c *Config) SetTimeout(timeout uint) error {
	if c == nil {
		return fmt.Errorf("set timeout: %w", ErrInvalidArgument)
	}
	c.timeout = timeout
	return nil
}

func (c *Config) Timeout() uint {
	if c == nil {
		return 0
	}
	return c.timeout
}

func (c *Config) SetMode(mode Mode) error {
	if c == nil {
		return fmt.Errorf("set mode: %w", ErrInvalidArgument)
	}
	c.mode = mode
	return nil
}

func (c *Config) Mode() Mode {
	if c == nil {
		return ModeNone
	}
	return c.mode
}

// SetFlag ORs flag into the flag mask. Flags cannot be cleared once set.
func (c *Config) SetFlag(flag Flag) error {
	if c == nil {
		return fmt.Errorf("set flag: %w", ErrInvalidArgument)
	}
	c.flags |= flag
	return nil
}

func (c *Config) Flags() Flag {
	if c == nil {
		return 0
	}
	return c.flags
}

// SetVariable stores value under key, replacing the value of an existing
// variable in place. A nil value stores the key without a value.
func (c *Config) SetVariable(key string, value *string) error {
	if c == nil {
		return fmt.Errorf("set variable: %w", ErrInvalidArgument)
	}
	if err := c.vars.Upsert(key, value); err != nil {
		return fmt.Errorf("set variable %q: %w: %w", key, ErrOutOfMemory, err)
	}

	if value != nil {
		c.log.Debug("Set config dictionary entry '%s' => '%s'", key, *value)
	} else {
		c.log.Debug("Set config dictionary entry '%s' => (null)", key)
	}
	return nil
}

// Variable returns the value stored under key. ok is false when the key is
// missing or was stored without a value.
func (c *Config) Variable(key string) (value string, ok bool) {
	if c == nil {
		return "", false
	}
	entry := c.vars.Find(key)
	if entry == nil {
		return "", false
	}
	return entry.Value()
}

// HasVariable reports whether key is present, with or without a value
func (c *Config) HasVariable(key string) bool {
	if c == nil {
		return false
	}
	return c.vars.Find(key) != nil
}

// DeleteVariable removes key. Any FirstVariable/NextVariable walk in
// progress is reset, whichever key was removed.
func (c *Config) DeleteVariable(key string) {
	if c == nil {
		return
	}
	c.vars.Delete(key)
}

// FirstVariable starts a walk over the variables, newest first. ok is false
// when there are none.
func (c *Config) FirstVariable() (Variable, bool) {
	if c == nil {
		return Variable{}, false
	}
	return toVariable(c.vars.First())
}

// NextVariable continues the walk started by FirstVariable
func (c *Config) NextVariable() (Variable, bool) {
	if c == nil {
		return Variable{}, false
	}
	return toVariable(c.vars.Next())
}

// Variables returns an iterator with its own position, so several walks can
// run side by side. It stops early if a variable is deleted or cleared.
func (c *Config) Variables() *dict.Iterator {
	if c == nil {
		return nil
	}
	return c.vars.Iter()
}

// VariableList returns a snapshot of all variables, newest first
func (c *Config) VariableList() []Variable {
	if c == nil {
		return nil
	}
	list := make([]Variable, 0, c.vars.Len())
	it := c.vars.Iter()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		v, _ := toVariable(e)
		list = append(list, v)
	}
	return list
}

// VariableCount returns the number of stored variables
func (c *Config) VariableCount() int {
	if c == nil {
		return 0
	}
	return c.vars.Len()
}

// ClearVariables removes every variable
func (c *Config) ClearVariables() {
	if c == nil {
		return
	}
	c.vars.Clear()
}

// Destroy drops the input and all variables. The module handle is borrowed
// and is left for its owner to release. The config must not be used after.
func (c *Config) Destroy() {
	if c == nil {
		return
	}
	c.input = ""
	c.ClearVariables()
}

func (c *Config) String() string {
	if c == nil {
		return "<nil>"
	}
	vars := c.VariableList()
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.String()
	}
	return fmt.Sprintf("module=%s input=%q snaplen=%d timeout=%dms mode=%s flags=%#x vars=[%s]",
		c.module, c.input, c.snaplen, c.timeout, c.mode, uint32(c.flags), strings.Join(parts, " "))
}

func toVariable(e *dict.Entry) (Variable, bool) {
	if e == nil {
		return Variable{}, false
	}
	value, hasValue := e.Value()
	return Variable{Key: e.Key(), Value: value, HasValue: hasValue}, true
}

// ParseVariable splits a "key" or "key=value" argument as given on the
// command line. The key must not be empty.
func ParseVariable(arg string) (string, *string, error) {
	key, value, found := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil, fmt.Errorf("parse variable %q: empty key: %w", arg, ErrInvalidArgument)
	}
	if !found {
		return key, nil, nil
	}
	return key, &value, nil
}
