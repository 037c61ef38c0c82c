package refflat

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/gtf2refflat/internal/gtf"
)

// Artifact suffixes appended to the input path.
const (
	NormalizedSuffix = ".gff3"
	RefFlatSuffix    = ".refflat"
)

// NormalizedPath returns the path of the intermediate normalized-syntax file
// for the given input, written alongside it.
func NormalizedPath(gtfPath string) string {
	return strings.TrimSuffix(gtfPath, ".gz") + NormalizedSuffix
}

// DefaultOutputPath returns the default RefFlat output path for the given
// input.
func DefaultOutputPath(gtfPath string) string {
	return strings.TrimSuffix(gtfPath, ".gz") + RefFlatSuffix
}

// Converter runs the full GTF to RefFlat pipeline: attribute normalization,
// feature parsing, and transcript reduction. Plain and gzipped inputs are
// supported.
type Converter struct {
	logger *zap.Logger
}

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{logger: zap.NewNop()}
}

// SetLogger sets the logger for progress and strand-conflict reports.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Convert converts the GTF at gtfPath into a RefFlat file, writing the
// normalized intermediate alongside the input. If outPath is empty the
// RefFlat file is written alongside the input as well. Rows are additionally
// fanned out to any extra writers. Returns the RefFlat path.
func (c *Converter) Convert(gtfPath, outPath string, extra ...RowWriter) (string, error) {
	normPath, err := c.normalize(gtfPath)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = DefaultOutputPath(gtfPath)
	}

	parser, err := gtf.NewParser(normPath)
	if err != nil {
		return "", &ReadWriteError{Op: "open", Path: normPath, Err: err}
	}
	defer parser.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return "", &ReadWriteError{Op: "create", Path: outPath, Err: err}
	}
	defer out.Close()

	w := RowWriter(NewWriter(out))
	if len(extra) > 0 {
		w = MultiWriter(append([]RowWriter{w}, extra...)...)
	}

	acc := NewAccumulator()
	acc.SetLogger(c.logger)
	if err := acc.Run(parser, w); err != nil {
		return "", err
	}

	c.logger.Info("wrote refFlat",
		zap.String("path", outPath),
		zap.Int("rows", acc.Rows()),
		zap.Int("strand_conflicts", acc.Conflicts()))

	return outPath, nil
}

// normalize rewrites the input's attribute columns into the intermediate
// normalized-syntax file and returns its path.
func (c *Converter) normalize(gtfPath string) (string, error) {
	in, err := os.Open(gtfPath)
	if err != nil {
		return "", &ReadWriteError{Op: "open", Path: gtfPath, Err: err}
	}
	defer in.Close()

	var reader io.Reader = in
	if strings.HasSuffix(gtfPath, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return "", &ReadWriteError{Op: "open gzip", Path: gtfPath, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	normPath := NormalizedPath(gtfPath)
	normFile, err := os.Create(normPath)
	if err != nil {
		return "", &ReadWriteError{Op: "create", Path: normPath, Err: err}
	}

	if err := gtf.Normalize(reader, normFile); err != nil {
		normFile.Close()
		return "", &ConversionError{Err: err}
	}

	if err := normFile.Close(); err != nil {
		return "", &ReadWriteError{Op: "close", Path: normPath, Err: err}
	}

	return normPath, nil
}
