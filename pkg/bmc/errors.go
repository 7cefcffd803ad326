package bmc

import "errors"

var (
	ErrSignature     = errors.New("invalid BMC signature")
	ErrSectionCount  = errors.New("unsupported BMC section count")
	ErrTruncated     = errors.New("truncated BMC input")
	ErrColorSyntax   = errors.New("malformed color text")
	ErrDocumentShape = errors.New("malformed color document")
	ErrTableTooLarge = errors.New("too many colors for table")
)
