// Copyright 2020-2022 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command codeindex is a thin, illustrative driver over the codeindex
// libraries. It is not a complete CLI implementation — full argument
// parsing, recursive filesystem discovery with ignore rules, and
// output-row emission are deliberately left to external tooling — but it
// demonstrates how the pieces wire together: load a profile or registry,
// collect inputs, run the engine, and emit canonical JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/codeindex/codeindex/emit"
	"github.com/codeindex/codeindex/index"
	"github.com/codeindex/codeindex/internal/jsonc"
	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/registry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("codeindex", flag.ContinueOnError)
	profilePath := fs.String("profile", "", "path to a single language profile (mutually exclusive with -registry)")
	registryPath := fs.String("registry", "", "path to a registry config routing files to profiles")
	root := fs.String("root", ".", "root directory to scan for input files")
	mode := fs.String("mode", "", "override symbol_policy.mode (all|declared)")
	excludeSingle := fs.Bool("exclude-single-letter", false, "override exclude_single_letter_identifiers")
	engineVersion := fs.String("engine-version", "", "engine_version to stamp on output")
	generatedAt := fs.String("generated-at", "", "generated_at timestamp to stamp on output (RFC3339); required for reproducible output")
	parallelism := fs.Int("parallelism", 0, "maximum per-file parallelism (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if (*profilePath == "") == (*registryPath == "") {
		return fmt.Errorf("exactly one of -profile or -registry is required")
	}

	opts := index.Options{
		GeneratedAt:    *generatedAt,
		EngineVersion:  *engineVersion,
		MaxParallelism: *parallelism,
	}
	if *mode != "" {
		m := profile.SymbolPolicyMode(*mode)
		opts.Overrides.Mode = &m
	}
	if *excludeSingle {
		v := true
		opts.Overrides.ExcludeSingleLetterIdentifiers = &v
	}

	ctx := context.Background()

	if *profilePath != "" {
		p, err := loadProfile(*profilePath)
		if err != nil {
			return err
		}
		inputs, err := discover(*root)
		if err != nil {
			return err
		}
		idx, err := index.Run(ctx, inputs, p, opts)
		if err != nil {
			return err
		}
		return emit.SymbolIndex(os.Stdout, idx)
	}

	cfg, err := loadRegistryConfig(*registryPath)
	if err != nil {
		return err
	}
	reg, err := registry.New(*registryPath, cfg)
	if err != nil {
		return err
	}
	inputs, err := discover(*root)
	if err != nil {
		return err
	}
	proj, err := reg.BuildProject(ctx, *root, inputs, loadProfile, opts)
	if err != nil {
		return err
	}
	return emit.ProjectIndex(os.Stdout, proj)
}

func loadProfile(path string) (*profile.LanguageProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return profile.Load(path, data)
}

// discover walks root and builds an Input per regular file, computing
// file_id as the root-relative, "/"-separated path. It is intentionally
// the simplest possible walker: a real CLI would apply ignore-file rules
// and symlink policy here, both out of scope for the core engine.
func discover(root string) ([]index.Input, error) {
	var inputs []index.Input
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		inputs = append(inputs, index.Input{
			Path:   p,
			FileID: filepath.ToSlash(rel),
		})
		return nil
	})
	return inputs, err
}

// loadRegistryConfig reads and decodes a registry config, tolerating the
// same "//"-comment, trailing-comma JSONC dialect profile.Load accepts, so
// registry configs can be hand-edited the same way profiles are.
func loadRegistryConfig(path string) (registry.Config, error) {
	var cfg registry.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading registry config: %w", err)
	}
	if err := json.Unmarshal(jsonc.Strip(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing registry config %s: %w", path, err)
	}
	return cfg, nil
}
