package refflat

import "fmt"

// FailureMessage is the single user-facing message reported for any
// unrecoverable conversion failure.
const FailureMessage = "There was an error while converting the given GTF to a refFlat. " +
	"Make sure the GTF file is tab separated."

// ReadWriteError reports that the input could not be read or an output
// artifact could not be written.
type ReadWriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *ReadWriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadWriteError) Unwrap() error { return e.Err }

// ConversionError reports a failure during parsing or reduction.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert GTF: %v", e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
