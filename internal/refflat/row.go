package refflat

import (
	"slices"
	"strconv"
	"strings"

	"github.com/inodb/gtf2refflat/internal/gtf"
)

// Row is one finalized RefFlat record: 11 tab-separated fields describing a
// transcript's structure.
type Row struct {
	GeneName     string
	TranscriptID string
	Chrom        string
	Strand       gtf.Strand
	TxStart      int64
	TxEnd        int64
	CDSStart     int64
	CDSEnd       int64
	ExonCount    int
	ExonStarts   []int64
	ExonEnds     []int64
}

// finalize converts a completed state into one Row. Any pending non-exon
// merge is flushed, the coordinate lists are sorted independently of each
// other, and unresolved CDS boundaries fall back to the transcript extent.
func (s *TranscriptState) finalize() Row {
	if !s.hasExon && s.hasMerge {
		s.exonStarts = append(s.exonStarts, s.mergeStart)
		s.exonEnds = append(s.exonEnds, s.mergeEnd)
	}

	slices.Sort(s.exonStarts)
	slices.Sort(s.exonEnds)

	cdsStart := s.cdsStart
	if cdsStart == unresolved {
		cdsStart = s.exonStarts[0]
	} else {
		cdsStart--
	}

	cdsEnd := s.cdsEnd
	if cdsEnd == unresolved {
		cdsEnd = s.exonEnds[len(s.exonEnds)-1]
	}

	return Row{
		GeneName:     s.GeneID,
		TranscriptID: s.TranscriptID,
		Chrom:        s.Chrom,
		Strand:       s.Strand,
		TxStart:      s.exonStarts[0],
		TxEnd:        s.exonEnds[len(s.exonEnds)-1],
		CDSStart:     cdsStart,
		CDSEnd:       cdsEnd,
		ExonCount:    len(s.exonStarts),
		ExonStarts:   s.exonStarts,
		ExonEnds:     s.exonEnds,
	}
}

// Fields returns the row's 11 RefFlat columns in output order.
func (r Row) Fields() []string {
	return []string{
		r.GeneName,
		r.TranscriptID,
		r.Chrom,
		r.Strand.Symbol(),
		strconv.FormatInt(r.TxStart, 10),
		strconv.FormatInt(r.TxEnd, 10),
		strconv.FormatInt(r.CDSStart, 10),
		strconv.FormatInt(r.CDSEnd, 10),
		strconv.Itoa(r.ExonCount),
		joinCoords(r.ExonStarts),
		joinCoords(r.ExonEnds),
	}
}

// String formats the row as one tab-delimited RefFlat line.
func (r Row) String() string {
	return strings.Join(r.Fields(), "\t")
}

// joinCoords comma-joins a coordinate list without a trailing separator.
func joinCoords(coords []int64) string {
	var b strings.Builder
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(c, 10))
	}
	return b.String()
}
