package qoi

import "errors"

// Input-shape errors.
var (
	ErrEmpty          = errors.New("qoi: data is empty")
	ErrTooShort       = errors.New("qoi: data is too short")
	ErrTooBig         = errors.New("qoi: image is too big to process")
	ErrMismatchedDesc = errors.New("qoi: image description does not match the data")
	ErrNotEnoughSpace = errors.New("qoi: buffer does not have enough space")
)

// Format errors.
var (
	ErrNotQoi      = errors.New("qoi: not a qoi image")
	ErrInvalidDesc = errors.New("qoi: image description is invalid")
)

// Stream lifecycle errors.
var (
	ErrNotInitialized     = errors.New("qoi: stream encoder/decoder is not initialized yet")
	ErrAlreadyInitialized = errors.New("qoi: stream encoder/decoder already initialized")
)

// Resource errors.
var ErrBadAlloc = errors.New("qoi: failed to allocate memory")

// Errors returned by the file wrappers.
var (
	ErrFileExists     = errors.New("qoi: file already exists")
	ErrFileNotExists  = errors.New("qoi: file does not exist")
	ErrNotRegularFile = errors.New("qoi: not a regular file")
	ErrIO             = errors.New("qoi: unable to do read or write operation")
)
