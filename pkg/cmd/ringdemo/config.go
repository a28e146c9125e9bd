// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/ringbuf/pkg/util/humanizeutil"
	"github.com/cockroachdb/ringbuf/pkg/util/ring"
	"gopkg.in/yaml.v3"
)

// config is the buffer configuration, read from a YAML file and overridden by
// flags.
type config struct {
	Name       string `yaml:"name"`
	Capacity   int    `yaml:"capacity"`
	GrowthRate int    `yaml:"growth_rate"`
	Locked     bool   `yaml:"locked"`
	// Budget is a byte size such as "64KiB" or "1MB". Empty or zero means
	// unlimited.
	Budget string `yaml:"budget"`
}

func defaultConfig() config {
	return config{
		Name:       "demo",
		Capacity:   ring.DefaultCapacity,
		GrowthRate: ring.DefaultGrowthRate,
	}
}

func loadConfig(path string, cfg *config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening config")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

// budgetBytes parses Budget. It returns 0 when no budget is configured.
func (c config) budgetBytes() (int64, error) {
	if c.Budget == "" {
		return 0, nil
	}
	n, err := humanizeutil.ParseBytes(c.Budget)
	if err != nil {
		return 0, errors.WithHint(
			errors.Wrapf(err, "invalid budget %q", c.Budget),
			"Use a byte size such as 512B, 4KiB or 1MB.")
	}
	if n < 0 {
		return 0, errors.Newf("invalid budget %q: must not be negative", c.Budget)
	}
	return n, nil
}
