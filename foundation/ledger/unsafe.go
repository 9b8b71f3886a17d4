package ledger

// Unsafe provides direct mutation of recorded entries without recomputing
// their digests. It exists to simulate corruption of the ledger and must not
// be used on any normal code path.
type Unsafe struct {
	l *Ledger
}

// Unsafe returns the mutation capability for the ledger.
func (l *Ledger) Unsafe() Unsafe {
	return Unsafe{l: l}
}

// SetTimestamp overwrites the timestamp of the entry.
func (u Unsafe) SetTimestamp(sequence uint64, timestamp string) error {
	return u.mutate(sequence, func(e *Entry) { e.Timestamp = timestamp })
}

// SetSubjectID overwrites the subject of the entry.
func (u Unsafe) SetSubjectID(sequence uint64, subjectID string) error {
	return u.mutate(sequence, func(e *Entry) { e.SubjectID = subjectID })
}

// SetPayload overwrites the payload of the entry.
func (u Unsafe) SetPayload(sequence uint64, payload string) error {
	return u.mutate(sequence, func(e *Entry) { e.Payload = payload })
}

// SetPrevDigest overwrites the link to the previous entry.
func (u Unsafe) SetPrevDigest(sequence uint64, prevDigest string) error {
	return u.mutate(sequence, func(e *Entry) { e.PrevDigest = prevDigest })
}

// SetDigest overwrites the stored digest of the entry.
func (u Unsafe) SetDigest(sequence uint64, digest string) error {
	return u.mutate(sequence, func(e *Entry) { e.Digest = digest })
}

func (u Unsafe) mutate(sequence uint64, fn func(e *Entry)) error {
	u.l.mu.Lock()
	defer u.l.mu.Unlock()

	if sequence >= uint64(len(u.l.entries)) {
		return ErrNotFound
	}

	fn(&u.l.entries[sequence])

	return nil
}
