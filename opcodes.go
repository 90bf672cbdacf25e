package concordevm

// Op identifies an Instruction's operation. Kept as a small dense integer
// enum rather than one Go type per instruction, mirroring the teacher's
// optable.go: a program is overwhelmingly homogeneous (an address-taking
// operation plus, for a handful of ops, one literal payload), so a tagged
// struct dispatched on a small int avoids one allocation and one interface
// dispatch per instruction that a variant-per-type encoding would cost.
type Op uint8

// The instruction set described by the core spec's §3/§4.2, plus the I/O
// opcodes SPEC_FULL.md §5 adds to make spec.md §6's "interpreter may emit
// I/O opcodes" concrete.
const (
	NoOp Op = iota

	// Immediate writes. The literal payload travels in the Instruction
	// itself (Int, Str, Bool, or Bytes) and is copied into memory at A.
	WriteStringToSymbol
	WriteIntToSymbol
	WriteBoolToSymbol
	WriteBytesToSymbol

	// Memory operations.
	MemCpyOp    // A=src, B=dst, C=n
	MemExtendOp // A=n

	// Integer arithmetic (64-bit signed, two's complement). A, B are
	// operand addresses; C is the destination address, except Fma which
	// takes three operands (A, B, C) and a destination D.
	AddOp
	SubOp
	MulOp
	DivOp
	ModOp
	MinOp
	MaxOp
	FmaOp // A=a, B=b, C=c, D=dest; dest = a*b + c

	// Comparisons. A, B are int64 operand addresses; C is the destination
	// address of the resulting boolean.
	CompareEqOp
	CompareGtOp
	CompareLtOp

	// Floating trigonometry. A is the float64 operand address, B the
	// float64 destination address.
	SinOp
	CosOp
	TanOp
	AsinOp
	AcosOp
	AtanOp

	// Control flow.
	JumpOp        // A=target pc
	JumpIfTrueOp  // A=target pc, B=condition address
	AwaitOp       // A=future id address, B=write address
	CreateCoroutineOp // A=dest pc, B=arg address, C=arg length, D=write-future-id address
	RetOp         // A=return payload address, B=n bytes
	DeleteFutureOp // A=future id address

	// I/O. See SPEC_FULL.md §5.
	IOOpenOp  // A=name address, B=name length, C=write-stream-id address
	IOCloseOp // A=stream id address
	IOReadOp  // A=stream id address, B=n, C=dest address, D=write-n-read address
	IOWriteOp // A=stream id address, B=n, C=src address, D=write-n-written address
)

// Instruction is one program step: an Op tag plus its operand addresses (A,
// B, C, D — meaning depends on Op, documented alongside each Op constant
// above) and, for the four immediate-write ops, the literal payload to
// write (exactly one of Int, Str, Bool, Bytes is meaningful, again
// depending on Op).
type Instruction struct {
	Op Op

	A, B, C, D uint

	Int   int64
	Str   string
	Bool  bool
	Bytes []byte
}

// Convenience constructors. These exist for the same reason the teacher
// provides IdentMessage/ArgsMessage/etc. instead of making every caller
// build a *Message by hand: program construction reads like the
// instruction set's own pseudocode (as in spec.md §8's scenarios) rather
// than a sequence of struct literals.

// WriteString writes v's UTF-8 bytes at addr.
func WriteString(addr uint, v string) Instruction {
	return Instruction{Op: WriteStringToSymbol, A: addr, Str: v}
}

// WriteInt writes v at addr.
func WriteInt(addr uint, v int64) Instruction {
	return Instruction{Op: WriteIntToSymbol, A: addr, Int: v}
}

// WriteBool writes v at addr.
func WriteBool(addr uint, v bool) Instruction {
	return Instruction{Op: WriteBoolToSymbol, A: addr, Bool: v}
}

// WriteBytes writes v at addr.
func WriteBytes(addr uint, v []byte) Instruction {
	return Instruction{Op: WriteBytesToSymbol, A: addr, Bytes: v}
}

// MemCpy copies n bytes from src to dst.
func MemCpy(src, dst, n uint) Instruction {
	return Instruction{Op: MemCpyOp, A: src, B: dst, C: n}
}

// MemExtend grows memory by n zero bytes.
func MemExtend(n uint) Instruction {
	return Instruction{Op: MemExtendOp, A: n}
}

// Add computes mem[dest] = mem[a] + mem[b].
func Add(a, b, dest uint) Instruction { return Instruction{Op: AddOp, A: a, B: b, C: dest} }

// Sub computes mem[dest] = mem[a] - mem[b].
func Sub(a, b, dest uint) Instruction { return Instruction{Op: SubOp, A: a, B: b, C: dest} }

// Mul computes mem[dest] = mem[a] * mem[b].
func Mul(a, b, dest uint) Instruction { return Instruction{Op: MulOp, A: a, B: b, C: dest} }

// Div computes mem[dest] = mem[a] / mem[b] (truncated). Faults with
// DivisionByZero if mem[b] is zero.
func Div(a, b, dest uint) Instruction { return Instruction{Op: DivOp, A: a, B: b, C: dest} }

// Mod computes mem[dest] = mem[a] % mem[b], with the sign of the dividend.
// Faults with DivisionByZero if mem[b] is zero.
func Mod(a, b, dest uint) Instruction { return Instruction{Op: ModOp, A: a, B: b, C: dest} }

// Min computes mem[dest] = min(mem[a], mem[b]).
func Min(a, b, dest uint) Instruction { return Instruction{Op: MinOp, A: a, B: b, C: dest} }

// Max computes mem[dest] = max(mem[a], mem[b]).
func Max(a, b, dest uint) Instruction { return Instruction{Op: MaxOp, A: a, B: b, C: dest} }

// Fma computes mem[dest] = mem[a]*mem[b] + mem[c].
func Fma(a, b, c, dest uint) Instruction {
	return Instruction{Op: FmaOp, A: a, B: b, C: c, D: dest}
}

// CompareEq writes (mem[a] == mem[b]) as a bool at dest.
func CompareEq(a, b, dest uint) Instruction {
	return Instruction{Op: CompareEqOp, A: a, B: b, C: dest}
}

// CompareGreater writes (mem[a] > mem[b]) as a bool at dest.
func CompareGreater(a, b, dest uint) Instruction {
	return Instruction{Op: CompareGtOp, A: a, B: b, C: dest}
}

// CompareLess writes (mem[a] < mem[b]) as a bool at dest.
func CompareLess(a, b, dest uint) Instruction {
	return Instruction{Op: CompareLtOp, A: a, B: b, C: dest}
}

// Sin, Cos, Tan, Asin, Acos, Atan apply the named float64 function to
// mem[src] and write the IEEE-754 result (NaN-propagating, no fault for
// out-of-domain inputs) at dest.

func Sin(src, dest uint) Instruction  { return Instruction{Op: SinOp, A: src, B: dest} }
func Cos(src, dest uint) Instruction  { return Instruction{Op: CosOp, A: src, B: dest} }
func Tan(src, dest uint) Instruction  { return Instruction{Op: TanOp, A: src, B: dest} }
func Asin(src, dest uint) Instruction { return Instruction{Op: AsinOp, A: src, B: dest} }
func Acos(src, dest uint) Instruction { return Instruction{Op: AcosOp, A: src, B: dest} }
func Atan(src, dest uint) Instruction { return Instruction{Op: AtanOp, A: src, B: dest} }

// Jump sets the pc to target unconditionally.
func Jump(target uint) Instruction { return Instruction{Op: JumpOp, A: target} }

// JumpIfTrue sets the pc to target iff the byte at condition is non-zero.
func JumpIfTrue(target, condition uint) Instruction {
	return Instruction{Op: JumpIfTrueOp, A: target, B: condition}
}

// Await suspends the current coroutine on the future whose id is stored (as
// a uint64) at futureIDAddr, writing its eventual payload at writeAddr.
func Await(futureIDAddr, writeAddr uint) Instruction {
	return Instruction{Op: AwaitOp, A: futureIDAddr, B: writeAddr}
}

// CreateCoroutine forks a new coroutine at destPC with the argLen bytes at
// argAddr as its argument blob, writing the resulting future id (a uint64)
// at writeFutureIDAddr.
func CreateCoroutine(destPC, argAddr, argLen, writeFutureIDAddr uint) Instruction {
	return Instruction{Op: CreateCoroutineOp, A: destPC, B: argAddr, C: argLen, D: writeFutureIDAddr}
}

// Ret ends the current coroutine's turn, returning the n bytes at addr as
// its result payload.
func Ret(addr, n uint) Instruction { return Instruction{Op: RetOp, A: addr, B: n} }

// DeleteFuture drops the future whose id is stored at futureIDAddr.
func DeleteFuture(futureIDAddr uint) Instruction {
	return Instruction{Op: DeleteFutureOp, A: futureIDAddr}
}

// IOOpen opens the stream named by the nameLen bytes at nameAddr, writing
// the resulting stream id (a uint32) at writeStreamIDAddr.
func IOOpen(nameAddr, nameLen, writeStreamIDAddr uint) Instruction {
	return Instruction{Op: IOOpenOp, A: nameAddr, B: nameLen, C: writeStreamIDAddr}
}

// IOClose closes the stream whose id is stored at streamIDAddr.
func IOClose(streamIDAddr uint) Instruction {
	return Instruction{Op: IOCloseOp, A: streamIDAddr}
}

// IORead reads up to n bytes from the stream at streamIDAddr into destAddr,
// writing the actual count read (a uint64) at writeNReadAddr.
func IORead(streamIDAddr, n, destAddr, writeNReadAddr uint) Instruction {
	return Instruction{Op: IOReadOp, A: streamIDAddr, B: n, C: destAddr, D: writeNReadAddr}
}

// IOWrite writes n bytes from srcAddr to the stream at streamIDAddr,
// writing the actual count written (a uint64) at writeNWrittenAddr.
func IOWrite(streamIDAddr, n, srcAddr, writeNWrittenAddr uint) Instruction {
	return Instruction{Op: IOWriteOp, A: streamIDAddr, B: n, C: srcAddr, D: writeNWrittenAddr}
}
