// Package gtf provides GTF annotation parsing functionality.
package gtf

import "strings"

// Strand is the orientation of a feature on its contig.
type Strand int8

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// Symbol returns the single-character strand representation used by RefFlat.
func (s Strand) Symbol() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// ParseStrand converts a strand column value to a Strand.
func ParseStrand(s string) Strand {
	if s == "-" {
		return Reverse
	}
	return Forward
}

// Feature is one parsed annotation record. Coordinates are zero-based
// half-open: Start is the source start minus one, End is the source end.
type Feature struct {
	Chrom        string
	Type         string
	Start        int64
	End          int64
	Strand       Strand
	GeneID       string
	TranscriptID string
}

// parseNormalizedAttributes parses the compact key=value attribute column
// produced by the normalizer, e.g. "ID=G1;transcript_id=T1".
func parseNormalizedAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, "=")
		if idx == -1 {
			continue
		}

		attrs[part[:idx]] = part[idx+1:]
	}

	return attrs
}
