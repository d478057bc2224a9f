// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package bam reads primary alignment records from SAM and BAM files produced
// by the aligner and converts them to alignment.PrimaryRecord values.  It
// augments the SAM and BAM packages in github.com/grailbio/hts.
package bam
