package colfile

import "errors"

var (
	ErrBadSchema       = errors.New("colfile: invalid schema")
	ErrWriterFinalized = errors.New("colfile: writer is already finalized")
	ErrBadValue        = errors.New("colfile: value does not fit column type")
	ErrBadMagic        = errors.New("colfile: not a colpack columnar file")
	ErrBadBuffer       = errors.New("colfile: truncated or corrupt buffer")
)
