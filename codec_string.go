package concordevm

import "unicode/utf8"

// WriteString writes the UTF-8 bytes of v starting at addr. The encoded
// length equals len(v) exactly; there is no length prefix, matching the
// core spec's string encoding (length is supplied externally by whoever
// reads it back, the same as a byte blob).
func (m *Memory) WriteString(addr uint, v string) *Fault {
	b, f := m.slice("WriteString", addr, uint(len(v)))
	if f != nil {
		return f
	}
	copy(b, v)
	return nil
}

// ReadString reads n bytes starting at addr as a NUL-terminated string
// within that fixed slot: if a NUL byte occurs before the nth byte, the
// string ends there; otherwise the whole n-byte slot is the string. The
// bytes read (up to the terminator) must be valid UTF-8, or this returns a
// TypeParse Fault.
func (m *Memory) ReadString(addr, n uint) (string, *Fault) {
	b, f := m.slice("ReadString", addr, n)
	if f != nil {
		return "", f
	}
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	s := b[:end]
	if !utf8.Valid(s) {
		return "", NewFaultf(TypeParse, "ReadString: invalid UTF-8 at address %d, length %d", addr, n)
	}
	return string(s), nil
}
