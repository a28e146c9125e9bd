// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util/humanizeutil"
	"github.com/cockroachdb/ringbuf/pkg/util/log"
	"github.com/cockroachdb/ringbuf/pkg/util/mon"
	"github.com/cockroachdb/ringbuf/pkg/util/ring"
	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// slotSize is the number of bytes one slot of the demo buffer occupies.
const slotSize = int64(unsafe.Sizeof(""))

// errUnknownCommand is returned for script lines that name no operation.
var errUnknownCommand = errors.New("unknown command")

// demo is a string buffer wired to a memory monitor, Prometheus metrics and
// the log.
type demo struct {
	cfg     config
	monitor *mon.BytesMonitor
	acc     mon.BoundAccount
	reg     *prometheus.Registry
	metrics *ring.Metrics
	buf     *ring.Buffer[string]
}

func newDemo(ctx context.Context, cfg config) (*demo, error) {
	limit, err := cfg.budgetBytes()
	if err != nil {
		return nil, err
	}
	d := &demo{cfg: cfg, reg: prometheus.NewRegistry()}
	if limit > 0 {
		d.monitor = mon.NewMonitor(cfg.Name, limit)
	} else {
		d.monitor = mon.NewUnlimitedMonitor(cfg.Name)
	}
	d.acc = d.monitor.MakeBoundAccount()
	if d.metrics, err = ring.NewMetrics(d.reg, "ringdemo"); err != nil {
		return nil, err
	}
	opts := []ring.Option[string]{
		ring.WithName[string](cfg.Name),
		ring.WithCapabilities(ring.OrderedCapabilities[string]()),
		ring.WithMemoryAccount[string](&d.acc),
		ring.WithEventHandler[string](ring.MultiEventHandler{
			d.metrics,
			ring.NewLoggingEventHandler(10 * time.Second),
		}),
	}
	if cfg.Locked {
		opts = append(opts, ring.WithLockedGrowth[string]())
	}
	if d.buf, err = ring.New[string](cfg.Capacity, cfg.GrowthRate, opts...); err != nil {
		return nil, err
	}
	log.VEventf(ctx, 1, "created buffer %s: capacity %d, growth rate %d%%, budget %q",
		cfg.Name, cfg.Capacity, cfg.GrowthRate, cfg.Budget)
	return d, nil
}

func (d *demo) close(ctx context.Context) {
	if err := d.buf.DestroyShallow(); err != nil {
		log.Warningf(ctx, "%v", err)
	}
	d.acc.Close(ctx)
	d.monitor.Stop(ctx)
}

// run executes the script read from r, one operation per line. Blank lines
// and lines starting with # are skipped. Failed operations are reported on w
// and do not stop the script; unknown commands do.
func (d *demo) run(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := d.exec(ctx, w, strings.Fields(line)); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "reading script")
	}
	fmt.Fprintf(w, "len=%d cap=%d\n", d.buf.Len(), d.buf.Cap())
	return nil
}

func (d *demo) exec(ctx context.Context, w io.Writer, fields []string) error {
	cmd, args := fields[0], fields[1:]
	intArg := func() (int, error) {
		if len(args) != 1 {
			return 0, errors.Newf("%s: expected one argument", cmd)
		}
		n, err := strconv.Atoi(args[0])
		return n, errors.Wrapf(err, "%s", cmd)
	}
	report := func(err error) {
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	value := func(v string, err error) {
		if err != nil {
			report(err)
			return
		}
		fmt.Fprintln(w, v)
	}
	peeked := func(v string, ok bool) {
		if !ok {
			fmt.Fprintln(w, "(empty)")
			return
		}
		fmt.Fprintln(w, v)
	}

	switch cmd {
	case "push-front", "push-rear":
		if len(args) == 0 {
			return errors.Newf("%s: expected at least one value", cmd)
		}
		for _, v := range args {
			var err error
			if cmd == "push-front" {
				err = d.buf.PushFront(v)
			} else {
				err = d.buf.PushRear(v)
			}
			if err != nil {
				report(err)
				break
			}
		}
	case "pop-front":
		value(d.buf.PopFront())
	case "pop-rear":
		value(d.buf.PopRear())
	case "peek-front":
		peeked(d.buf.PeekFront())
	case "peek-rear":
		peeked(d.buf.PeekRear())
	case "contains":
		if len(args) != 1 {
			return errors.Newf("%s: expected one argument", cmd)
		}
		ok, err := d.buf.Contains(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ok)
	case "max", "min":
		f := d.buf.Max
		if cmd == "min" {
			f = d.buf.Min
		}
		v, ok, err := f()
		if err != nil {
			return err
		}
		peeked(v, ok)
	case "lock":
		d.buf.LockGrowth()
	case "unlock":
		d.buf.UnlockGrowth()
	case "rate":
		n, err := intArg()
		if err != nil {
			return err
		}
		if !d.buf.SetGrowthRate(n) {
			fmt.Fprintf(w, "error: growth rate must be in (100, %d], got %d\n", ring.MaxGrowthRate, n)
		}
	case "reserve":
		n, err := intArg()
		if err != nil {
			return err
		}
		report(d.buf.Reserve(n))
	case "shrink":
		d.buf.ShrinkToFit()
	case "clear":
		d.buf.Clear()
	case "show":
		d.show(w)
	default:
		return errors.Mark(errors.Newf("%q", cmd), errUnknownCommand)
	}
	log.VEventf(ctx, 2, "%s: %s", cmd, d.buf)
	return nil
}

// show renders the buffer contents as a table, front first.
func (d *demo) show(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"pos", "value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	pos := 0
	d.buf.ForEach(func(v string) bool {
		table.Append([]string{strconv.Itoa(pos), v})
		pos++
		return true
	})
	table.Render()
	fmt.Fprintf(w, "len=%d cap=%d rate=%d locked=%t used=%s\n",
		d.buf.Len(), d.buf.Cap(), d.buf.GrowthRate(), d.buf.Locked(), humanizeutil.IBytes(d.acc.Used()))
}

// state is the snapshot printed by --debug.
type state struct {
	Name       string
	Len, Cap   int
	GrowthRate int
	Locked     bool
	Elements   []string
	UsedBytes  int64
	MaxBytes   int64
}

func (d *demo) debug(w io.Writer) {
	s := state{
		Name:       d.buf.Name(),
		Len:        d.buf.Len(),
		Cap:        d.buf.Cap(),
		GrowthRate: d.buf.GrowthRate(),
		Locked:     d.buf.Locked(),
		Elements:   d.buf.ToSlice(),
		UsedBytes:  d.acc.Used(),
		MaxBytes:   d.monitor.MaximumBytes(),
	}
	fmt.Fprintf(w, "%# v\n", pretty.Formatter(s))
}

// dumpMetrics writes the collected metrics in the Prometheus text format.
func (d *demo) dumpMetrics(w io.Writer) error {
	families, err := d.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrap(err, "encoding metrics")
		}
	}
	return nil
}
