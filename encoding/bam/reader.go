// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bam

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	biogobam "github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/junction/alignment"
)

// ReadOpts defines which records ReadPrimary keeps.
type ReadOpts struct {
	// InsertName is the reference name of the inserted element.
	InsertName string
	// InsertOnly keeps only records that touch the insert sequence.
	InsertOnly bool
	// MinMapQ drops primary records with a lower mapping quality.
	MinMapQ int
	// Parallelism is the number of BAM decompression goroutines.
	Parallelism int
}

// ReadStats counts the records seen by ReadPrimary.
type ReadStats struct {
	Records       int // all records in the file
	Unmapped      int
	NonPrimary    int // secondary or supplementary records
	LowMapQ       int
	OffInsert     int // dropped by InsertOnly
	BadAlignments int // mapped records whose span cannot be derived
	Kept          int
}

// Input is the content of one alignment file.
type Input struct {
	Path    string
	Header  *sam.Header
	Records []alignment.PrimaryRecord
	Stats   ReadStats
}

// RefLen returns the length of the named reference from the header.
func (in *Input) RefLen(name string) (int, bool) {
	if in.Header == nil {
		return 0, false
	}
	for _, ref := range in.Header.Refs() {
		if ref.Name() == name {
			return ref.Len(), true
		}
	}
	return 0, false
}

type recordReader interface {
	Header() *sam.Header
	Read() (*sam.Record, error)
}

// IsSAM returns true if path names a text SAM file.
func IsSAM(path string) bool {
	return strings.HasSuffix(path, ".sam")
}

// ReadPrimary reads path, a SAM file if the name ends in ".sam" and a BAM file
// otherwise, and returns its mapped primary records in file order.
func ReadPrimary(ctx context.Context, path string, opts ReadOpts) (in *Input, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	defer func() {
		if e := f.Close(ctx); e != nil && err == nil {
			err = errors.E(e, "close", path)
		}
	}()

	var rr recordReader
	if IsSAM(path) {
		rr, err = sam.NewReader(f.Reader(ctx))
	} else {
		parallelism := opts.Parallelism
		if parallelism < 1 {
			parallelism = 1
		}
		var br *biogobam.Reader
		if br, err = biogobam.NewReader(f.Reader(ctx), parallelism); err == nil {
			defer br.Close() // nolint: errcheck
			rr = br
		}
	}
	if err != nil {
		return nil, errors.E(err, "read header", path)
	}

	in = &Input{Path: path, Header: rr.Header()}
	for {
		record, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(err, "read record", path)
		}
		in.add(record, opts)
	}
	log.Printf("%s: %d records, kept %d primary records", path, in.Stats.Records, in.Stats.Kept)
	log.Debug.Printf("%s: read stats %+v", path, in.Stats)
	return in, nil
}

func (in *Input) add(record *sam.Record, opts ReadOpts) {
	in.Stats.Records++
	switch {
	case IsUnmapped(record):
		in.Stats.Unmapped++
		return
	case !IsPrimary(record):
		in.Stats.NonPrimary++
		return
	case int(record.MapQ) < opts.MinMapQ:
		in.Stats.LowMapQ++
		return
	case opts.InsertOnly && !TouchesInsert(record, opts.InsertName):
		in.Stats.OffInsert++
		return
	}
	r, err := FromRecord(record)
	if err != nil {
		log.Debug.Printf("%s: skipping record: %v", in.Path, err)
		in.Stats.BadAlignments++
		return
	}
	in.Records = append(in.Records, r)
	in.Stats.Kept++
}
