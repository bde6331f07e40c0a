package ewkb

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// Sentinel errors matched by errors.Is against a *DecodeError.
var (
	ErrUnknownTypeCode   = errors.New("ewkb: unknown type code")
	ErrUnexpectedEOF     = errors.New("ewkb: unexpected end of input")
	ErrDimensionMismatch = geospatial.ErrDimensionMismatch
)

// Reason classifies a decode failure.
type Reason uint8

const (
	UnknownTypeCode Reason = iota + 1
	UnexpectedEOF
	DimensionMismatch
)

func (r Reason) String() string {
	switch r {
	case UnknownTypeCode:
		return "unknown_type_code"
	case UnexpectedEOF:
		return "unexpected_eof"
	case DimensionMismatch:
		return "dimension_mismatch"
	default:
		return "unknown"
	}
}

// DecodeError is the only error type Decode returns.
type DecodeError struct {
	Reason Reason
	// Code is the offending header value for UnknownTypeCode.
	Code uint32
	// Offset is the byte position in the input where the failure was detected.
	Offset int
}

func (e *DecodeError) Error() string {
	switch e.Reason {
	case UnknownTypeCode:
		return fmt.Sprintf("ewkb: unknown type code 0x%08x at offset %d", e.Code, e.Offset)
	case UnexpectedEOF:
		return fmt.Sprintf("ewkb: unexpected end of input at offset %d", e.Offset)
	case DimensionMismatch:
		return fmt.Sprintf("ewkb: dimension mismatch at offset %d", e.Offset)
	default:
		return "ewkb: decode failed"
	}
}

// Unwrap maps the reason onto its sentinel.
func (e *DecodeError) Unwrap() error {
	switch e.Reason {
	case UnknownTypeCode:
		return ErrUnknownTypeCode
	case UnexpectedEOF:
		return ErrUnexpectedEOF
	case DimensionMismatch:
		return ErrDimensionMismatch
	default:
		return nil
	}
}

// ReasonOf returns the decode failure reason carried by err, or 0.
func ReasonOf(err error) Reason {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Reason
	}
	return 0
}
