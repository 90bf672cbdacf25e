package concordevm

import (
	"io"
	"os"
)

// StreamID identifies an open stream within an IOManager.
type StreamID uint32

// stream is one open I/O stream. The "stdio" name binds the process's own
// stdin/stdout; any other name opens that path for reading, and lazily
// opens a "<name>.tmp" sibling for writing the first time a write
// actually happens. On Close, if anything was written, the .tmp file
// atomically replaces the original via rename; a stream that was only
// ever read leaves no trace on disk.
type stream struct {
	name   string
	isStd  bool
	reader io.ReadCloser
	writer *os.File // nil until the first write
}

func (s *stream) tmpName() string {
	return s.name + ".tmp"
}

// IOManager owns every open stream for an Interpreter. It is not safe for
// concurrent use; the single-threaded Scheduler never calls into it from
// more than one coroutine at a time, so no locking is needed.
type IOManager struct {
	streams map[StreamID]*stream
	next    StreamID
}

// NewIOManager returns an IOManager with no open streams.
func NewIOManager() *IOManager {
	return &IOManager{streams: make(map[StreamID]*stream)}
}

// Open binds name to a new stream and returns its id. The special name
// "stdio" binds the process's stdin for reading and stdout for writing;
// any other name opens that path read-only until a write forces open of
// its ".tmp" sibling.
func (mgr *IOManager) Open(name string) (StreamID, *Fault) {
	var s *stream
	if name == "stdio" {
		s = &stream{name: name, isStd: true, reader: os.Stdin}
	} else {
		f, err := os.Open(name)
		if err != nil {
			return 0, NewFault(IOError, err, "open %q for reading", name)
		}
		s = &stream{name: name, reader: f}
	}
	mgr.next++
	id := mgr.next
	mgr.streams[id] = s
	return id, nil
}

func (mgr *IOManager) get(id StreamID) (*stream, *Fault) {
	s, ok := mgr.streams[id]
	if !ok {
		return nil, NewFaultf(IOError, "no such stream %d", id)
	}
	return s, nil
}

// Read reads into buf from the stream's reader, returning the number of
// bytes actually read (which may be less than len(buf), including zero
// at end of stream, per io.Reader's own contract).
func (mgr *IOManager) Read(id StreamID, buf []byte) (int, *Fault) {
	s, f := mgr.get(id)
	if f != nil {
		return 0, f
	}
	if s.isStd {
		n, err := os.Stdin.Read(buf)
		if err != nil && err != io.EOF {
			return n, NewFault(IOError, err, "read stdio")
		}
		return n, nil
	}
	n, err := s.reader.Read(buf)
	if err != nil && err != io.EOF {
		return n, NewFault(IOError, err, "read %q", s.name)
	}
	return n, nil
}

// Write writes buf to the stream, opening its write side (stdout for
// "stdio", or the "<name>.tmp" sibling for anything else) on first use.
func (mgr *IOManager) Write(id StreamID, buf []byte) (int, *Fault) {
	s, f := mgr.get(id)
	if f != nil {
		return 0, f
	}
	if s.isStd {
		n, err := os.Stdout.Write(buf)
		if err != nil {
			return n, NewFault(IOError, err, "write stdio")
		}
		return n, nil
	}
	if s.writer == nil {
		w, err := os.Create(s.tmpName())
		if err != nil {
			return 0, NewFault(IOError, err, "open %q for writing", s.tmpName())
		}
		s.writer = w
	}
	n, err := s.writer.Write(buf)
	if err != nil {
		return n, NewFault(IOError, err, "write %q", s.tmpName())
	}
	return n, nil
}

// Close closes the stream. If it was ever written to, its ".tmp" sibling
// atomically replaces the original file via rename; a stream that was
// only ever read leaves no ".tmp" file behind, since its write side was
// never opened.
func (mgr *IOManager) Close(id StreamID) *Fault {
	s, f := mgr.get(id)
	if f != nil {
		return f
	}
	delete(mgr.streams, id)
	if s.isStd {
		return nil
	}
	if s.reader != nil {
		s.reader.Close()
	}
	if s.writer == nil {
		return nil
	}
	if err := s.writer.Close(); err != nil {
		return NewFault(IOError, err, "close %q", s.tmpName())
	}
	if err := os.Rename(s.tmpName(), s.name); err != nil {
		return NewFault(IOError, err, "rename %q to %q", s.tmpName(), s.name)
	}
	return nil
}
