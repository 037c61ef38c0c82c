package refflat

import (
	"go.uber.org/zap"

	"github.com/inodb/gtf2refflat/internal/gtf"
)

// FeatureSource is the interface for readers that produce features in input
// order. Next returns nil, nil when there are no more features.
type FeatureSource interface {
	Next() (*gtf.Feature, error)
}

// RowWriter is the interface for sinks that accept finished RefFlat rows.
type RowWriter interface {
	Write(Row) error
	Flush() error
}

// Accumulator groups contiguous features by transcript identifier and reduces
// each group into one RefFlat row. It requires the features of one transcript
// to arrive as a contiguous run; exactly one transcript state is live at a
// time.
type Accumulator struct {
	logger *zap.Logger

	state    *TranscriptState
	ignoreID string

	rows      int
	conflicts int
}

// NewAccumulator creates a new accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{logger: zap.NewNop()}
}

// SetLogger sets the logger for strand-conflict reports.
func (a *Accumulator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Rows returns the number of rows emitted so far.
func (a *Accumulator) Rows() int { return a.rows }

// Conflicts returns the number of transcripts dropped due to strand
// conflicts.
func (a *Accumulator) Conflicts() int { return a.conflicts }

// Run consumes the source to exhaustion, writing one row per non-conflicted
// transcript to w, and flushes w.
func (a *Accumulator) Run(src FeatureSource, w RowWriter) error {
	for {
		f, err := src.Next()
		if err != nil {
			return &ConversionError{Err: err}
		}
		if f == nil {
			break
		}
		if err := a.observe(f, w); err != nil {
			return err
		}
	}

	// Finalize whatever state remains live at end of input.
	if a.state != nil {
		if err := a.emit(w); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return &ReadWriteError{Op: "flush", Path: "output", Err: err}
	}
	return nil
}

// observe applies one feature to the state machine.
func (a *Accumulator) observe(f *gtf.Feature, w RowWriter) error {
	// Drop features of an identifier flagged after a strand conflict. The
	// flag is cleared once a different identifier arrives.
	if a.ignoreID != "" {
		if f.TranscriptID == a.ignoreID {
			return nil
		}
		a.ignoreID = ""
	}

	// A new identifier closes the current group.
	if a.state != nil && f.TranscriptID != a.state.TranscriptID {
		if err := a.emit(w); err != nil {
			return err
		}
	}

	if a.state == nil {
		a.state = newTranscriptState(f)
	} else if f.Strand != a.state.Strand {
		a.logger.Warn("all group members must be on the same strand",
			zap.String("transcript_id", f.TranscriptID),
			zap.String("chrom", f.Chrom))
		a.ignoreID = f.TranscriptID
		a.state = nil
		a.conflicts++
		return nil
	}

	a.state.merge(f)
	return nil
}

// emit finalizes the live state into one row and resets to idle.
func (a *Accumulator) emit(w RowWriter) error {
	row := a.state.finalize()
	a.state = nil

	if err := w.Write(row); err != nil {
		return &ReadWriteError{Op: "write row", Path: row.TranscriptID, Err: err}
	}
	a.rows++
	return nil
}
