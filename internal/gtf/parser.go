package gtf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads features from a normalized-syntax annotation file. It is a
// finite, single-pass reader: Next returns features in input order and cannot
// be restarted.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	lineNumber int
}

// NewParser creates a new parser for the given normalized file.
func NewParser(path string) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open normalized file: %w", err)
	}

	return &Parser{
		reader: bufio.NewReader(file),
		file:   file,
	}, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next feature. Lines lacking a transcript identifier are
// skipped. Returns nil, nil when there are no more features.
func (p *Parser) Next() (*Feature, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read line: %w", err)
		}

		atEOF := err == io.EOF
		line = strings.TrimRight(line, "\n")

		if line != "" {
			p.lineNumber++
			feat, perr := p.parseLine(line)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", p.lineNumber, perr)
			}
			if feat != nil {
				return feat, nil
			}
			if atEOF {
				return nil, nil
			}
			continue
		}

		if atEOF {
			return nil, nil
		}
	}
}

// parseLine parses one normalized line. Returns nil, nil for lines without a
// transcript identifier.
func (p *Parser) parseLine(line string) (*Feature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("expected 9 fields, got %d", len(fields))
	}

	attrs := parseNormalizedAttributes(fields[8])
	transcriptID := attrs[transcriptIDKey]
	if transcriptID == "" {
		return nil, nil
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	return &Feature{
		Chrom:        fields[0],
		Type:         strings.ToLower(fields[2]),
		Start:        start - 1,
		End:          end,
		Strand:       ParseStrand(fields[6]),
		GeneID:       attrs[normalizedGene],
		TranscriptID: transcriptID,
	}, nil
}

// Close closes the parser and releases resources.
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// LineNumber returns the number of lines consumed so far.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}
