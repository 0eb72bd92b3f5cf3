package daq

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status is the numeric result code reported to backends and callers that
// expect DAQ return values.
type Status int

const (
	StatusSuccess         Status = 0
	StatusNoMem           Status = -2
	StatusInvalidArgument Status = -7
	// StatusError covers any error that is not one of the above
	StatusError Status = -1
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoMem:
		return "out of memory"
	case StatusInvalidArgument:
		return "invalid argument"
	default:
		return "error"
	}
}

type statusError struct {
	status Status
	code   codes.Code
	msg    string
}

func (e *statusError) Error() string {
	return e.msg
}

// GRPCStatus lets grpc/status.FromError map config errors onto gRPC codes
func (e *statusError) GRPCStatus() *status.Status {
	return status.New(e.code, e.msg)
}

var (
	// ErrInvalidArgument is returned when a required argument or the config
	// itself is absent
	ErrInvalidArgument error = &statusError{StatusInvalidArgument, codes.InvalidArgument, "daq: invalid argument"}
	// ErrOutOfMemory is returned when a variable cannot be stored
	ErrOutOfMemory error = &statusError{StatusNoMem, codes.ResourceExhausted, "daq: out of memory"}
)

// StatusOf maps an error returned by this package onto its Status
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	return StatusError
}
