package node

import "errors"

// ErrInvalidSize indicates a non-positive vector size was requested.
var ErrInvalidSize = errors.New("node: vector size must be positive")

// ErrIndexOutOfRange indicates an element index fell outside [0, size).
var ErrIndexOutOfRange = errors.New("node: index out of range")

// ErrHeaderCountMismatch indicates a vector source was given a headers
// slice whose length does not match its declared size.
var ErrHeaderCountMismatch = errors.New("node: header count does not match size")

// ErrNilKernel indicates a computed node was constructed with a nil fn.
var ErrNilKernel = errors.New("node: kernel function is nil")
