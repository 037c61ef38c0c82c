package gtf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Attribute keys retained by the normalizer. gene_id is emitted under the
// GFF3-style ID key, transcript_id keeps its name.
const (
	geneIDKey       = "gene_id"
	transcriptIDKey = "transcript_id"
	normalizedGene  = "ID"
)

// NormalizeLine rewrites the attribute column of one 9-column GTF line from
// space-separated `key "value"` token syntax to compact key=value syntax,
// keeping only the gene and transcript identifiers. Columns 1-8 pass through
// unchanged. The recognized fragments are concatenated without an added
// delimiter and the final character of the joined attribute string is dropped,
// which removes the trailing semicolon carried over from the last quoted value.
func NormalizeLine(line string) (string, error) {
	values := strings.Split(line, "\t")
	attributes := strings.Split(values[len(values)-1], " ")

	result := make([]string, len(values)-1, len(values))
	copy(result, values[:len(values)-1])

	var fragments []string
	for i := 0; i < len(attributes); i++ {
		key := ""
		switch attributes[i] {
		case geneIDKey:
			key = normalizedGene
		case transcriptIDKey:
			key = transcriptIDKey
		default:
			continue
		}

		if i+1 >= len(attributes) {
			return "", fmt.Errorf("attribute %q has no value", attributes[i])
		}
		value := strings.ReplaceAll(attributes[i+1], "\"", "")
		fragments = append(fragments, key+"="+value)
		i++
	}

	joined := strings.Join(fragments, "")
	if joined != "" {
		joined = joined[:len(joined)-1]
	}
	result = append(result, joined)

	return strings.Join(result, "\t"), nil
}

// Normalize reads raw GTF content and writes the normalized-syntax lines to w,
// one per retained input line. Empty lines and comment lines are skipped.
// Rows are newline-separated with no trailing newline after the final row.
func Normalize(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	bw := bufio.NewWriter(w)
	first := true

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		normalized, err := NormalizeLine(line)
		if err != nil {
			return err
		}

		if !first {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(normalized); err != nil {
			return err
		}
		first = false
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan GTF: %w", err)
	}

	return bw.Flush()
}
