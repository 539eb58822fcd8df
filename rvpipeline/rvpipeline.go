//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package rvpipeline loads an ordered optimization pipeline from YAML,
// decoding it into the opt.PassSpec list opt.Driver.Run consumes.
package rvpipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowgraph/rvsdg-go/opt"
)

// Config is the top-level pipeline document: an ordered list of passes,
// each with an ID matching an opt.Pass registered on the driver and an
// optional, pass-specific parameter map.
type Config struct {
	Passes []PassConfig `yaml:"passes"`
}

// PassConfig is one pipeline step as written in YAML:
//
//	passes:
//	  - id: dne
//	  - id: loop-unroll
//	    params:
//	      factor: 8
type PassConfig struct {
	ID     string         `yaml:"id"`
	Params map[string]any `yaml:"params"`
}

// Load reads and decodes the pipeline config at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rvpipeline: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a pipeline config from raw YAML.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rvpipeline: decode: %w", err)
	}
	for i, p := range cfg.Passes {
		if p.ID == "" {
			return Config{}, fmt.Errorf("rvpipeline: pass %d is missing an id", i)
		}
	}
	return cfg, nil
}

// Specs converts cfg into the []opt.PassSpec shape opt.Driver.Run expects.
func (cfg Config) Specs() []opt.PassSpec {
	specs := make([]opt.PassSpec, len(cfg.Passes))
	for i, p := range cfg.Passes {
		specs[i] = opt.PassSpec{ID: p.ID, Params: p.Params}
	}
	return specs
}
