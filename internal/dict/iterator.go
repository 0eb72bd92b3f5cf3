package dict

// Iterator walks a Dict independently of the shared cursor and of any other
// Iterator. It stops early if the dictionary is modified by Delete or Clear.
type Iterator struct {
	dict       *Dict
	next       *Entry
	generation uint64
	err        error
}

// Iter returns a new iterator positioned before the first entry
func (d *Dict) Iter() *Iterator {
	return &Iterator{
		dict:       d,
		next:       d.head,
		generation: d.generation,
	}
}

// Next returns the next entry, or nil and false at the end of the sequence
// or when the iterator has been invalidated.
func (it *Iterator) Next() (*Entry, bool) {
	if it == nil || it.dict == nil || it.err != nil {
		return nil, false
	}
	if it.generation != it.dict.generation {
		it.err = ErrIteratorInvalidated
		it.next = nil
		return nil, false
	}
	entry := it.next
	if entry == nil {
		return nil, false
	}
	it.next = entry.next
	return entry, true
}

// Err returns ErrIteratorInvalidated if iteration stopped because entries
// were removed, nil otherwise
func (it *Iterator) Err() error {
	if it == nil {
		return nil
	}
	return it.err
}
