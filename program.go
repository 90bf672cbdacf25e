package concordevm

// Program is an immutable sequence of Instructions shared by every
// coroutine spawned from it. A coroutine only ever reads its Program and
// advances its own PC through it, so the underlying slice can be shared
// freely between coroutines without copying or locking.
type Program struct {
	instructions []Instruction
}

// NewProgram builds a Program from a fixed instruction sequence.
func NewProgram(instructions ...Instruction) Program {
	return Program{instructions: instructions}
}

// Len returns the number of instructions in the program.
func (p Program) Len() uint {
	return uint(len(p.instructions))
}

// At returns the instruction at pc and whether pc was in bounds. A false
// ok means the caller has run off the end of the program, the EOF
// condition spec.md §4 treats as an implicit Ret.
func (p Program) At(pc uint) (Instruction, bool) {
	if pc >= uint(len(p.instructions)) {
		return Instruction{}, false
	}
	return p.instructions[pc], true
}

// Fork returns a Program sharing this one's underlying instruction slice.
// Every coroutine spawned via CreateCoroutine runs the same code, only at
// a different entry pc and against its own Memory, so forking a Program
// never needs to copy its instructions.
func (p Program) Fork() Program {
	return Program{instructions: p.instructions}
}
