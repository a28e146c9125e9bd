// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util/humanizeutil"
	"github.com/cockroachdb/ringbuf/pkg/util/ring"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// growTable prints the capacity after each of steps growths starting from
// cfg.Capacity, with the size of the backing array. Steps whose array would
// not fit in the configured budget are marked.
func growTable(w io.Writer, cfg config, steps int) error {
	if cfg.Capacity < 1 {
		return errors.Newf("capacity must be at least 1, got %d", cfg.Capacity)
	}
	if !ring.ValidGrowthRate(cfg.GrowthRate) {
		return errors.Newf("growth rate must be in (100, %d], got %d", ring.MaxGrowthRate, cfg.GrowthRate)
	}
	limit, err := cfg.budgetBytes()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"step", "capacity", "added", "size", "fits"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	capacity := cfg.Capacity
	for step := 0; step <= steps; step++ {
		added := 0
		if step > 0 {
			next := ring.NextCapacity(capacity, cfg.GrowthRate)
			added = next - capacity
			capacity = next
		}
		size := int64(capacity) * slotSize
		fits := "yes"
		if limit > 0 && size > limit {
			fits = "no"
		}
		table.Append([]string{
			strconv.Itoa(step),
			humanize.Comma(int64(capacity)),
			strconv.Itoa(added),
			string(humanizeutil.IBytes(size)),
			fits,
		})
	}
	table.Render()
	return nil
}
