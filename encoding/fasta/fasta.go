// Package fasta reads sequence lengths from FASTA files.  FASTA files consist
// of a number of named sequences that may be interrupted by newlines.  For
// example:
//
// >LTR
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>LTR HIV-1 long terminal repeat' becomes 'LTR'.
package fasta

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Lengths holds the length of every sequence in a FASTA file.
type Lengths struct {
	lens     map[string]int
	seqNames []string
}

// ReadLengths scans FASTA data and records the length of each sequence.  Only
// the lengths are kept in memory.
func ReadLengths(r io.Reader) (*Lengths, error) {
	l := &Lengths{lens: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var seqName string
	seqLen := 0
	seen := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if seen {
				if err := l.add(seqName, seqLen); err != nil {
					return nil, err
				}
			}
			seqName = strings.Split(line[1:], " ")[0]
			seqLen = 0
			seen = true
			continue
		}
		if !seen {
			return nil, errors.Errorf("malformed FASTA file: sequence data before the first name")
		}
		seqLen += len(line)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if seen {
		if err := l.add(seqName, seqLen); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Lengths) add(seqName string, n int) error {
	if seqName == "" {
		return errors.Errorf("malformed FASTA file: empty sequence name")
	}
	if _, ok := l.lens[seqName]; ok {
		return errors.Errorf("malformed FASTA file: duplicate sequence %s", seqName)
	}
	l.lens[seqName] = n
	l.seqNames = append(l.seqNames, seqName)
	return nil
}

// Len returns the length of the given sequence.
func (l *Lengths) Len(seqName string) (int, error) {
	n, ok := l.lens[seqName]
	if !ok {
		return 0, errors.Errorf("sequence not found: %s", seqName)
	}
	return n, nil
}

// SeqNames returns the names of all sequences, in the order of appearance in
// the FASTA file.
func (l *Lengths) SeqNames() []string {
	return l.seqNames
}

// SeqLen opens the FASTA file at path, which may be gzip compressed, and
// returns the length of seqName.
func SeqLen(ctx context.Context, path, seqName string) (n int, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if e := f.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	r := io.Reader(f.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if r, err = gzip.NewReader(r); err != nil {
			return 0, errors.Wrapf(err, "open %s", path)
		}
	}
	l, err := ReadLengths(r)
	if err != nil {
		return 0, errors.Wrap(err, path)
	}
	return l.Len(seqName)
}
