package concordevm

// ByteCodec is the capability a type needs to be placed into and read back
// out of a Memory's linear byte range. The core spec describes this as a
// polymorphic encode/decode protocol; this module implements it as one
// concrete function pair per supported type (WriteInt64/ReadInt64, and so
// on) rather than a single generic interface, mirroring the teacher's
// convention of a dedicated file and dedicated constructor per primitive
// type instead of a shared generic path.
//
// Every codec function's size is fixed for numeric and boolean types and
// variable for strings and byte blobs, per the core spec's definition of
// size_of. Endianness is native: numeric encodings use the platform's
// native byte order and width, matching original_source's
// to_ne_bytes/from_ne_bytes.
type ByteCodec interface {
	// SizeOf returns the number of bytes this value occupies when encoded.
	SizeOf() uint
}
