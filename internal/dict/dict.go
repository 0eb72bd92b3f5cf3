// Package dict provides the ordered key/value store that holds DAQ module
// variables. Entries are kept newest first and iteration follows that order.
package dict

import "errors"

var (
	// ErrFull is returned when an insert would exceed the entry limit
	ErrFull = errors.New("dict: entry limit reached")
	// ErrIteratorInvalidated is reported by an Iterator whose dictionary
	// had entries deleted or cleared after the iterator was created
	ErrIteratorInvalidated = errors.New("dict: iterator invalidated by delete or clear")
)

// Entry is a single key with an optional value
type Entry struct {
	key      string
	value    string
	hasValue bool
	next     *Entry
}

// Key returns the entry key
func (e *Entry) Key() string {
	return e.key
}

// Value returns the entry value and whether one is set
func (e *Entry) Value() (string, bool) {
	return e.value, e.hasValue
}

func (e *Entry) setValue(value *string) {
	if value == nil {
		e.value, e.hasValue = "", false
		return
	}
	e.value, e.hasValue = *value, true
}

// Dict is an insertion-ordered string dictionary with a single shared cursor.
// It is not safe for concurrent use.
type Dict struct {
	head       *Entry
	cursor     *Entry
	length     int
	maxEntries int
	// generation is bumped whenever entries are removed so that
	// outstanding iterators can detect it
	generation uint64
}

// Option configures a Dict
type Option func(*Dict)

// WithMaxEntries caps the number of entries. Zero or negative means no limit.
func WithMaxEntries(n int) Option {
	return func(d *Dict) {
		d.maxEntries = n
	}
}

// New creates an empty dictionary
func New(opts ...Option) *Dict {
	d := &Dict{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Len returns the number of entries
func (d *Dict) Len() int {
	return d.length
}

// Insert prepends a new entry. It does not check for an existing key; use
// Upsert to keep keys unique.
func (d *Dict) Insert(key string, value *string) error {
	if d.maxEntries > 0 && d.length >= d.maxEntries {
		return ErrFull
	}

	entry := &Entry{key: key}
	entry.setValue(value)
	entry.next = d.head
	d.head = entry
	d.length++

	return nil
}

// Find returns the first entry matching key in iteration order, or nil.
// With duplicate keys the most recently inserted one wins.
func (d *Dict) Find(key string) *Entry {
	for entry := d.head; entry != nil; entry = entry.next {
		if entry.key == key {
			return entry
		}
	}
	return nil
}

// Upsert replaces the value of an existing entry in place or inserts a new
// one. A nil value clears the value but keeps the key.
func (d *Dict) Upsert(key string, value *string) error {
	if entry := d.Find(key); entry != nil {
		entry.setValue(value)
		return nil
	}
	return d.Insert(key, value)
}

// Delete removes the first entry matching key and reports whether one was
// found. The shared cursor is reset and iterators are invalidated even when
// nothing matched.
func (d *Dict) Delete(key string) bool {
	d.cursor = nil
	d.generation++

	var prev *Entry
	for entry := d.head; entry != nil; entry = entry.next {
		if entry.key == key {
			if prev != nil {
				prev.next = entry.next
			} else {
				d.head = entry.next
			}
			entry.next = nil
			d.length--
			return true
		}
		prev = entry
	}
	return false
}

// Clear removes every entry and resets the cursor
func (d *Dict) Clear() {
	// unlink so a retained *Entry does not pin the rest of the chain
	for entry := d.head; entry != nil; {
		next := entry.next
		entry.next = nil
		entry = next
	}
	d.head = nil
	d.cursor = nil
	d.length = 0
	d.generation++
}

// First moves the shared cursor to the first entry and returns it
func (d *Dict) First() *Entry {
	d.cursor = d.head
	return d.cursor
}

// Next advances the shared cursor. Once the cursor is exhausted (or reset by
// Delete or Clear) Next keeps returning nil until First is called again.
func (d *Dict) Next() *Entry {
	if d.cursor != nil {
		d.cursor = d.cursor.next
	}
	return d.cursor
}
