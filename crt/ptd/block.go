package ptd

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/silver3-github/ucxxrt/crt/pool"
	"github.com/silver3-github/ucxxrt/crt/thread"
)

// errorMessageCap bounds the stored error message, matching the fixed
// scratch buffer the runtime reserves per thread.
const errorMessageCap = 94

// utf16le encodes wide error messages. Encoders are stateless and safe for
// reuse across blocks.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Block is one thread's private runtime-data block.
//
// The exported scalar fields plus the two message buffers form the
// logically-visible scratch region: reset zeroes exactly this group.
// Identity and the pool slot binding are structural and survive reset; the
// registry restamps identity itself when it recycles a block for a new
// occupant of a reused thread id.
type Block struct {
	id   thread.Identity
	slot *pool.Ref[Block]

	// Errno is the thread-local error value of the last failing operation.
	Errno int32

	// OSError is the host error code backing Errno, when one exists.
	OSError uint32

	// RandState seeds the thread-local pseudo-random sequence.
	RandState uint64

	// errMsg and wideErrMsg are the lazily allocated, exclusively owned
	// error-message buffers. They are freed (dropped) on release or reuse,
	// never shared between blocks.
	errMsg     []byte
	wideErrMsg []byte
}

// Identity returns the identity of the thread that owns this block.
func (b *Block) Identity() thread.Identity {
	return b.id
}

// SetErrorMessage stores msg in the block's narrow error buffer, truncating
// to the fixed scratch capacity. The wide buffer is invalidated and will be
// re-encoded on next use.
func (b *Block) SetErrorMessage(msg string) {
	if len(msg) > errorMessageCap {
		msg = msg[:errorMessageCap]
	}
	if b.errMsg == nil {
		b.errMsg = make([]byte, 0, errorMessageCap)
	}
	b.errMsg = append(b.errMsg[:0], msg...)
	b.wideErrMsg = nil
}

// ErrorMessage returns the stored error message, or "" when none is set.
func (b *Block) ErrorMessage() string {
	return string(b.errMsg)
}

// WideErrorMessage returns the stored error message encoded as UTF-16LE.
// The encoding is computed lazily and cached in the block's owned wide
// buffer. Returns nil when no message is set.
func (b *Block) WideErrorMessage() ([]byte, error) {
	if len(b.errMsg) == 0 {
		return nil, nil
	}
	if b.wideErrMsg != nil {
		return b.wideErrMsg, nil
	}
	enc, err := utf16le.NewEncoder().Bytes(b.errMsg)
	if err != nil {
		return nil, err
	}
	b.wideErrMsg = enc
	return b.wideErrMsg, nil
}

// reset clears the logically-visible scratch state and drops the owned
// buffers. It must not touch the structural fields (id, slot): identity is
// restamped by the registry, and the slot binding belongs to the pool.
func (b *Block) reset() {
	b.Errno = 0
	b.OSError = 0
	b.RandState = 0
	b.errMsg = nil
	b.wideErrMsg = nil
}
