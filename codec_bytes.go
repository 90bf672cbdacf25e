package concordevm

// WriteBytes writes the raw bytes of v starting at addr.
func (m *Memory) WriteBytes(addr uint, v []byte) *Fault {
	b, f := m.slice("WriteBytes", addr, uint(len(v)))
	if f != nil {
		return f
	}
	copy(b, v)
	return nil
}

// ReadBytes reads n raw bytes starting at addr. Unlike ReadString, no
// NUL-termination or UTF-8 validity is applied: the length is supplied
// entirely by the caller, per the core spec's definition of a byte blob.
func (m *Memory) ReadBytes(addr, n uint) ([]byte, *Fault) {
	b, f := m.slice("ReadBytes", addr, n)
	if f != nil {
		return nil, f
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}
