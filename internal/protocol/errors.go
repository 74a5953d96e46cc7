package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognized  = errors.New("protocol: unrecognized envelope")
	ErrUnknownPolicy = errors.New("protocol: unknown missing-header policy")
)

// UnrecognizedError reports a value that decoded to no envelope. Tag is
// the leading attribute name when there was one.
type UnrecognizedError struct {
	Tag string
}

func (e UnrecognizedError) Error() string {
	if e.Tag == "" {
		return "protocol: unrecognized envelope: no leading tag"
	}
	return fmt.Sprintf("protocol: unrecognized envelope: tag=%q", e.Tag)
}

func (e UnrecognizedError) Unwrap() error {
	return ErrUnrecognized
}
