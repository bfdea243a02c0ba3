// Package protocol implements the request dispatcher (component C8): the
// EOT/RS-framed wire protocol, operation routing to the store, search,
// similarity, and ranker packages, and response serialisation.
package protocol

import (
	"bufio"
	"bytes"
	"io"
)

// EOT and RS are the ASCII frame and field delimiters of the wire
// protocol: EOT (0x04) terminates a request or response; RS (0x1E)
// separates fields within one.
const (
	EOT byte = 0x04
	RS  byte = 0x1E
)

// ReadFrame reads one request frame from r: everything up to (and
// excluding) the next EOT byte. It reports ok=false, with a nil error, on
// a clean disconnect — either no EOT was found before the stream ended, or
// the frame was empty once the EOT was stripped. Any other read error is
// returned as err.
func ReadFrame(r *bufio.Reader) (frame []byte, ok bool, err error) {
	raw, readErr := r.ReadBytes(EOT)

	if readErr != nil && readErr != io.EOF {
		return nil, false, readErr
	}

	if readErr == io.EOF && (len(raw) == 0 || raw[len(raw)-1] != EOT) {
		return nil, false, nil
	}

	frame = bytes.TrimSuffix(raw, []byte{EOT})
	if len(frame) == 0 {
		return nil, false, nil
	}

	return frame, true, nil
}

// SplitFields splits a stripped request frame on RS into its operation
// name (field zero) and operands (the remainder).
func SplitFields(frame []byte) (op string, operands []string) {
	fields := bytes.Split(frame, []byte{RS})

	op = string(fields[0])
	if len(fields) > 1 {
		operands = make([]string, len(fields)-1)
		for i, f := range fields[1:] {
			operands[i] = string(f)
		}
	}

	return op, operands
}
