package concordevm

import (
	"math"

	"go.uber.org/zap"
)

// Interpreter executes one Coroutine's Program one instruction per Cycle
// call. It holds no coroutine state itself — Coroutine carries its own
// Memory, Program, and PC — so a single Interpreter can drive every
// coroutine a Scheduler owns.
type Interpreter struct {
	log *zap.Logger
	io  *IOManager
}

// NewInterpreter builds an Interpreter that logs faults to log and serves
// IOOpen/IOClose/IORead/IOWrite instructions through streams. A nil log is
// replaced with zap.NewNop(), matching the teacher convention of never
// requiring callers to special-case a missing logger. A nil streams is
// replaced with a fresh NewIOManager.
func NewInterpreter(log *zap.Logger, streams *IOManager) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	if streams == nil {
		streams = NewIOManager()
	}
	return &Interpreter{log: log, io: streams}
}

// Cycle executes exactly one instruction of coro's program against its
// memory, advancing its PC, and returns the Interrupt describing what
// happened. A coroutine whose pc has run off the end of its program
// yields an EOF interrupt rather than a fault, treated identically to an
// explicit Ret with an empty result.
//
// A faulting instruction does not advance the pc and is logged at Debug
// level: a fault ends only the faulting coroutine, not the process, so it
// is expected operational behavior rather than something worth surfacing
// above Debug.
func (in *Interpreter) Cycle(coro *Coroutine) Interrupt {
	instr, ok := coro.Program.At(coro.PC)
	if !ok {
		return eofInterrupt()
	}

	mem := coro.Memory
	pc := coro.PC

	fault := func(f *Fault) Interrupt {
		f = f.at(coro.ID, pc)
		in.log.Debug("fault", zap.Uint64("coroutine", uint64(coro.ID)), zap.Uint("pc", pc), zap.Error(f))
		return faultInterrupt(f)
	}

	switch instr.Op {
	case NoOp:
		coro.PC++
		return okInterrupt()

	case WriteStringToSymbol:
		if f := mem.WriteString(instr.A, instr.Str); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case WriteIntToSymbol:
		if f := mem.WriteInt64(instr.A, instr.Int); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case WriteBoolToSymbol:
		if f := mem.WriteBool(instr.A, instr.Bool); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case WriteBytesToSymbol:
		if f := mem.WriteBytes(instr.A, instr.Bytes); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case MemCpyOp:
		if f := mem.MemCpy(instr.A, instr.B, instr.C); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case MemExtendOp:
		mem.Extend(instr.A)
		coro.PC++
		return okInterrupt()

	case AddOp, SubOp, MulOp, DivOp, ModOp, MinOp, MaxOp:
		a, f := mem.ReadInt64(instr.A)
		if f != nil {
			return fault(f)
		}
		b, f := mem.ReadInt64(instr.B)
		if f != nil {
			return fault(f)
		}
		var r int64
		switch instr.Op {
		case AddOp:
			r = a + b
		case SubOp:
			r = a - b
		case MulOp:
			r = a * b
		case DivOp:
			if b == 0 {
				return fault(NewFaultf(DivisionByZero, "division by zero"))
			}
			r = a / b
		case ModOp:
			if b == 0 {
				return fault(NewFaultf(DivisionByZero, "division by zero"))
			}
			r = a % b
		case MinOp:
			if a < b {
				r = a
			} else {
				r = b
			}
		case MaxOp:
			if a > b {
				r = a
			} else {
				r = b
			}
		}
		if f := mem.WriteInt64(instr.C, r); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case FmaOp:
		a, f := mem.ReadInt64(instr.A)
		if f != nil {
			return fault(f)
		}
		b, f := mem.ReadInt64(instr.B)
		if f != nil {
			return fault(f)
		}
		c, f := mem.ReadInt64(instr.C)
		if f != nil {
			return fault(f)
		}
		if f := mem.WriteInt64(instr.D, a*b+c); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case CompareEqOp, CompareGtOp, CompareLtOp:
		a, f := mem.ReadInt64(instr.A)
		if f != nil {
			return fault(f)
		}
		b, f := mem.ReadInt64(instr.B)
		if f != nil {
			return fault(f)
		}
		var r bool
		switch instr.Op {
		case CompareEqOp:
			r = a == b
		case CompareGtOp:
			r = a > b
		case CompareLtOp:
			r = a < b
		}
		if f := mem.WriteBool(instr.C, r); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case SinOp, CosOp, TanOp, AsinOp, AcosOp, AtanOp:
		x, f := mem.ReadFloat64(instr.A)
		if f != nil {
			return fault(f)
		}
		var r float64
		switch instr.Op {
		case SinOp:
			r = math.Sin(x)
		case CosOp:
			r = math.Cos(x)
		case TanOp:
			r = math.Tan(x)
		case AsinOp:
			r = math.Asin(x)
		case AcosOp:
			r = math.Acos(x)
		case AtanOp:
			r = math.Atan(x)
		}
		if f := mem.WriteFloat64(instr.B, r); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case JumpOp:
		coro.PC = instr.A
		return okInterrupt()

	case JumpIfTrueOp:
		cond, f := mem.ReadBool(instr.B)
		if f != nil {
			return fault(f)
		}
		if cond {
			coro.PC = instr.A
		} else {
			coro.PC++
		}
		return okInterrupt()

	case AwaitOp:
		id, f := mem.ReadUint64(instr.A)
		if f != nil {
			return fault(f)
		}
		coro.PC++
		return awaitInterrupt(FutureID(id), instr.B)

	case CreateCoroutineOp:
		arg, f := mem.ReadBytes(instr.B, instr.C)
		if f != nil {
			return fault(f)
		}
		coro.PC++
		return createCoroutineInterrupt(instr.A, arg, instr.D)

	case RetOp:
		result, f := mem.ReadBytes(instr.A, instr.B)
		if f != nil {
			return fault(f)
		}
		return retInterrupt(result)

	case DeleteFutureOp:
		id, f := mem.ReadUint64(instr.A)
		if f != nil {
			return fault(f)
		}
		coro.PC++
		return deleteFutureInterrupt(FutureID(id))

	case IOOpenOp, IOCloseOp, IOReadOp, IOWriteOp:
		return in.cycleIO(coro, instr, fault)

	default:
		return fault(NewFaultf(TypeParse, "unknown opcode %d", instr.Op))
	}
}

// cycleIO executes the four I/O opcodes. Split out of Cycle's main switch
// since each one needs the Fault returned as an Interrupt via the same
// fault closure Cycle built, but the stream bookkeeping itself belongs in
// IOManager, not the interpreter.
func (in *Interpreter) cycleIO(coro *Coroutine, instr Instruction, fault func(*Fault) Interrupt) Interrupt {
	mem := coro.Memory
	switch instr.Op {
	case IOOpenOp:
		name, f := mem.ReadString(instr.A, instr.B)
		if f != nil {
			return fault(f)
		}
		id, f := in.io.Open(name)
		if f != nil {
			return fault(f)
		}
		if f := mem.WriteUint32(instr.C, uint32(id)); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case IOCloseOp:
		id, f := mem.ReadUint32(instr.A)
		if f != nil {
			return fault(f)
		}
		if f := in.io.Close(StreamID(id)); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case IOReadOp:
		id, f := mem.ReadUint32(instr.A)
		if f != nil {
			return fault(f)
		}
		buf := make([]byte, instr.B)
		n, f := in.io.Read(StreamID(id), buf)
		if f != nil {
			return fault(f)
		}
		if f := mem.WriteBytes(instr.C, buf[:n]); f != nil {
			return fault(f)
		}
		if f := mem.WriteUint64(instr.D, uint64(n)); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	case IOWriteOp:
		id, f := mem.ReadUint32(instr.A)
		if f != nil {
			return fault(f)
		}
		buf, f := mem.ReadBytes(instr.C, instr.B)
		if f != nil {
			return fault(f)
		}
		n, f := in.io.Write(StreamID(id), buf)
		if f != nil {
			return fault(f)
		}
		if f := mem.WriteUint64(instr.D, uint64(n)); f != nil {
			return fault(f)
		}
		coro.PC++
		return okInterrupt()

	default:
		return fault(NewFaultf(TypeParse, "unknown I/O opcode %d", instr.Op))
	}
}
