package kyc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

var errShortBuffer = errors.New("unexpected end of data")

// writer appends borsh values into a fixed buffer and never grows it.
type writer struct {
	buf []byte
	off int
}

func (w *writer) write(b []byte) error {
	if len(b) > len(w.buf)-w.off {
		return fmt.Errorf("%w: %d bytes do not fit in the %d remaining", ErrSerializationOverflow, len(b), len(w.buf)-w.off)
	}
	w.off += copy(w.buf[w.off:], b)
	return nil
}

func (w *writer) writeString(s string) error {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	if err := w.write(n[:]); err != nil {
		return err
	}
	return w.write([]byte(s))
}

func (w *writer) writeBool(v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return w.write([]byte{b})
}

// reader consumes borsh values from data.
type reader struct {
	data []byte
	off  int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.off {
		return nil, errShortBuffer
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readPubkey() (ledger.Pubkey, error) {
	b, err := r.next(ledger.PubkeyLength)
	if err != nil {
		return ledger.Pubkey{}, err
	}
	return ledger.PubkeyFromBytes(b)
}

func (r *reader) readString() (string, error) {
	n, err := r.next(4)
	if err != nil {
		return "", err
	}
	size := binary.LittleEndian.Uint32(n)
	if uint64(size) > uint64(len(r.data)-r.off) {
		return "", fmt.Errorf("string length %d exceeds remaining %d bytes", size, len(r.data)-r.off)
	}
	b, _ := r.next(int(size))
	if !utf8.Valid(b) {
		return "", errors.New("string is not valid utf-8")
	}
	return string(b), nil
}

func (r *reader) readBool() (bool, error) {
	b, err := r.next(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool byte %d", b[0])
	}
}
