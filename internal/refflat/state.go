// Package refflat turns a stream of GTF features into RefFlat transcript rows.
package refflat

import "github.com/inodb/gtf2refflat/internal/gtf"

// unresolved marks a CDS boundary not yet derived from any record.
const unresolved int64 = -1

// TranscriptState accumulates the features of one transcript. Exactly one
// state is live at a time; it is created on the first feature of a transcript
// identifier and replaced wholesale at every finalize or conflict boundary.
type TranscriptState struct {
	GeneID       string
	TranscriptID string
	Chrom        string
	Strand       gtf.Strand

	exonStarts []int64
	exonEnds   []int64

	cdsStart int64
	cdsEnd   int64
	hasStop  bool

	hasExon bool

	// Running merged interval built from non-exon features while no explicit
	// exon record has been seen.
	mergeStart int64
	mergeEnd   int64
	hasMerge   bool
}

// newTranscriptState creates a state bound to the first feature's identifiers.
func newTranscriptState(f *gtf.Feature) *TranscriptState {
	return &TranscriptState{
		GeneID:       f.GeneID,
		TranscriptID: f.TranscriptID,
		Chrom:        f.Chrom,
		Strand:       f.Strand,
		cdsStart:     unresolved,
		cdsEnd:       unresolved,
	}
}

// merge folds one feature into the state. The caller has already checked that
// the feature shares the state's transcript identifier and strand.
func (s *TranscriptState) merge(f *gtf.Feature) {
	s.GeneID = f.GeneID
	s.Chrom = f.Chrom

	s.reduceInterval(f)
	s.resolveCDS(f)
}

// reduceInterval builds the exon coordinate lists. Explicit exon records are
// appended as-is; while no exon record has been seen, non-exon records are
// merged into a running backbone interval approximating exon structure.
func (s *TranscriptState) reduceInterval(f *gtf.Feature) {
	if f.Type == "exon" {
		if !s.hasExon && (len(s.exonStarts) > 0 || len(s.exonEnds) > 0 || s.hasMerge) {
			s.exonStarts = s.exonStarts[:0]
			s.exonEnds = s.exonEnds[:0]
			s.hasMerge = false
		}
		s.exonStarts = append(s.exonStarts, f.Start)
		s.exonEnds = append(s.exonEnds, f.End)
		s.hasExon = true
		return
	}

	if s.hasExon {
		return
	}

	if !s.hasMerge {
		s.mergeStart = f.Start
		s.mergeEnd = f.End
		s.hasMerge = true
		return
	}

	// Overlapping or abutting intervals extend the running merge; a disjoint
	// interval completes it and reseeds.
	if f.Start <= s.mergeEnd || f.End <= s.mergeEnd {
		s.mergeStart = min(f.Start, s.mergeStart)
		s.mergeEnd = max(f.End, s.mergeEnd)
	} else {
		s.exonStarts = append(s.exonStarts, s.mergeStart)
		s.exonEnds = append(s.exonEnds, s.mergeEnd)
		s.mergeStart = f.Start
		s.mergeEnd = f.End
	}
}

// resolveCDS derives the CDS boundaries from codon and CDS records. On the
// forward strand the start codon fixes cdsStart and the stop codon fixes
// cdsEnd; on the reverse strand the roles invert. CDS records fill cdsStart
// once and keep advancing cdsEnd until a stop codon has been seen.
func (s *TranscriptState) resolveCDS(f *gtf.Feature) {
	switch f.Type {
	case "start_codon":
		if s.Strand == gtf.Forward {
			s.cdsStart = f.Start + 1
		} else {
			s.cdsEnd = f.End
			s.hasStop = true
		}
	case "stop_codon":
		if s.Strand == gtf.Forward {
			s.cdsEnd = f.End
			s.hasStop = true
		} else {
			s.cdsStart = f.Start + 1
		}
	case "cds":
		if s.cdsStart == unresolved {
			s.cdsStart = f.Start + 1
		}
		if !s.hasStop {
			s.cdsEnd = f.End
		}
	}
}
