package refflat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/gtf2refflat/internal/gtf"
)

// rowCollector captures written rows for inspection.
type rowCollector struct {
	rows []Row
}

func (c *rowCollector) Write(r Row) error { c.rows = append(c.rows, r); return nil }
func (c *rowCollector) Flush() error      { return nil }

func runAccumulator(t *testing.T, normalized string) (*Accumulator, []Row) {
	t.Helper()
	a := NewAccumulator()
	var c rowCollector
	err := a.Run(gtf.NewParserFromReader(strings.NewReader(normalized)), &c)
	require.NoError(t, err)
	return a, c.rows
}

func TestAccumulator_SingleTranscriptWithExon(t *testing.T) {
	// Exon at source 101-200, start codon 101-103, stop codon 198-200.
	normalized := "chr1\tTEST\texon\t101\t200\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\tstart_codon\t101\t103\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\tstop_codon\t198\t200\t.\t+\t.\tID=G1;transcript_id=T1"

	a, rows := runAccumulator(t, normalized)

	require.Len(t, rows, 1)
	assert.Equal(t, "G1\tT1\tchr1\t+\t100\t200\t100\t200\t1\t100\t200", rows[0].String())
	assert.Equal(t, 1, a.Rows())
	assert.Equal(t, 0, a.Conflicts())
}

func TestAccumulator_NoExonRecordsMergesBackbone(t *testing.T) {
	// No exon records: two disjoint CDS records become the merged backbone.
	normalized := "chr1\tTEST\tCDS\t101\t150\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\tCDS\t201\t250\t.\t+\t.\tID=G1;transcript_id=T1"

	_, rows := runAccumulator(t, normalized)

	require.Len(t, rows, 1)
	assert.Equal(t, "G1\tT1\tchr1\t+\t100\t250\t100\t250\t2\t100,200\t150,250", rows[0].String())
}

func TestAccumulator_StrandConflictDropsTranscript(t *testing.T) {
	normalized := "chr1\tTEST\texon\t101\t200\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\texon\t301\t400\t.\t-\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\texon\t501\t600\t.\t-\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\texon\t701\t800\t.\t+\t.\tID=G2;transcript_id=T2"

	a, rows := runAccumulator(t, normalized)

	require.Len(t, rows, 1, "no row for the conflicted transcript")
	assert.Equal(t, "T2", rows[0].TranscriptID)
	assert.Equal(t, 1, a.Conflicts())
}

func TestAccumulator_OneRowPerTranscript(t *testing.T) {
	normalized := "chr1\tTEST\texon\t101\t200\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\texon\t301\t400\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr2\tTEST\texon\t101\t200\t.\t-\t.\tID=G2;transcript_id=T2\n" +
		"chr3\tTEST\texon\t101\t200\t.\t+\t.\tID=G3;transcript_id=T3"

	_, rows := runAccumulator(t, normalized)

	require.Len(t, rows, 3)
	assert.Equal(t, "T1", rows[0].TranscriptID)
	assert.Equal(t, "T2", rows[1].TranscriptID)
	assert.Equal(t, "T3", rows[2].TranscriptID)

	for _, row := range rows {
		assert.Len(t, row.ExonStarts, row.ExonCount)
		assert.Len(t, row.ExonEnds, row.ExonCount)
	}

	assert.Equal(t, 2, rows[0].ExonCount)
	assert.Equal(t, "chr2", rows[1].Chrom)
	assert.Equal(t, gtf.Reverse, rows[1].Strand)
}

func TestAccumulator_ReverseStrandCDS(t *testing.T) {
	normalized := "chr1\tTEST\texon\t101\t400\t.\t-\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\tstop_codon\t101\t103\t.\t-\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\tstart_codon\t398\t400\t.\t-\t.\tID=G1;transcript_id=T1"

	_, rows := runAccumulator(t, normalized)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "-", row.Strand.Symbol())
	assert.Equal(t, int64(100), row.CDSStart)
	assert.Equal(t, int64(400), row.CDSEnd)
	assert.LessOrEqual(t, row.CDSStart, row.CDSEnd)
}

func TestAccumulator_Determinism(t *testing.T) {
	normalized := "chr1\tTEST\texon\t101\t200\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr1\tTEST\tCDS\t121\t180\t.\t+\t.\tID=G1;transcript_id=T1\n" +
		"chr2\tTEST\tCDS\t101\t150\t.\t-\t.\tID=G2;transcript_id=T2"

	_, first := runAccumulator(t, normalized)
	_, second := runAccumulator(t, normalized)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].String(), second[i].String())
	}
}

func TestAccumulator_Empty(t *testing.T) {
	a, rows := runAccumulator(t, "")
	assert.Empty(t, rows)
	assert.Equal(t, 0, a.Rows())
}
