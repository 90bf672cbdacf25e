package concordevm

// WriteBool writes v as a single byte: 0 for false, 1 for true — the
// canonical "any non-zero byte is true" encoding the core spec mandates,
// written canonically as 1 rather than an arbitrary non-zero byte.
func (m *Memory) WriteBool(addr uint, v bool) *Fault {
	b, f := m.slice("WriteBool", addr, SizeBool)
	if f != nil {
		return f
	}
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
	return nil
}

// ReadBool reads a boolean from addr: 0 is false, any other byte is true.
func (m *Memory) ReadBool(addr uint) (bool, *Fault) {
	b, f := m.slice("ReadBool", addr, SizeBool)
	if f != nil {
		return false, f
	}
	return b[0] != 0, nil
}
