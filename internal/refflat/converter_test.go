package refflat

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGTF = `##description: test annotation
chr1	HAVANA	gene	1	1000	.	+	.	gene_id "G1";
chr1	HAVANA	exon	101	200	.	+	.	gene_id "G1"; transcript_id "T1";
chr1	HAVANA	start_codon	101	103	.	+	.	gene_id "G1"; transcript_id "T1";
chr1	HAVANA	stop_codon	198	200	.	+	.	gene_id "G1"; transcript_id "T1";
chr1	HAVANA	CDS	501	550	.	+	.	gene_id "G2"; transcript_id "T2";
chr1	HAVANA	CDS	601	650	.	+	.	gene_id "G2"; transcript_id "T2";
`

const wantRefFlat = "G1\tT1\tchr1\t+\t100\t200\t100\t200\t1\t100\t200\n" +
	"G2\tT2\tchr1\t+\t500\t650\t500\t650\t2\t500,600\t550,650"

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "test.gtf")
	require.NoError(t, os.WriteFile(gtfPath, []byte(testGTF), 0644))

	out, err := NewConverter().Convert(gtfPath, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test.gtf.refflat"), out)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, wantRefFlat, string(got))

	// The normalized intermediate is written alongside the input.
	norm, err := os.ReadFile(filepath.Join(dir, "test.gtf.gff3"))
	require.NoError(t, err)
	assert.Contains(t, string(norm), "ID=G1;transcript_id=T1")
	assert.NotContains(t, string(norm), "##description")
}

func TestConvert_Deterministic(t *testing.T) {
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "test.gtf")
	require.NoError(t, os.WriteFile(gtfPath, []byte(testGTF), 0644))

	c := NewConverter()

	out, err := c.Convert(gtfPath, "")
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	out, err = c.Convert(gtfPath, "")
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConvert_GzippedInput(t *testing.T) {
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "test.gtf.gz")

	f, err := os.Create(gtfPath)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testGTF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	out, err := NewConverter().Convert(gtfPath, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test.gtf.refflat"), out, "gz suffix dropped from artifact names")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, wantRefFlat, string(got))
}

func TestConvert_OutputOverride(t *testing.T) {
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "test.gtf")
	require.NoError(t, os.WriteFile(gtfPath, []byte(testGTF), 0644))

	outPath := filepath.Join(dir, "custom.refflat")
	out, err := NewConverter().Convert(gtfPath, outPath)
	require.NoError(t, err)
	assert.Equal(t, outPath, out)
}

func TestConvert_MissingInput(t *testing.T) {
	_, err := NewConverter().Convert(filepath.Join(t.TempDir(), "missing.gtf"), "")
	require.Error(t, err)

	var rwErr *ReadWriteError
	assert.ErrorAs(t, err, &rwErr)
}

func TestConvert_MalformedInput(t *testing.T) {
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "bad.gtf")
	// A recognized key with no following value token.
	require.NoError(t, os.WriteFile(gtfPath, []byte("chr1\tHAVANA\tgene\t1\t10\t.\t+\t.\tgene_id\n"), 0644))

	_, err := NewConverter().Convert(gtfPath, "")
	require.Error(t, err)

	var convErr *ConversionError
	assert.ErrorAs(t, err, &convErr)
}
