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

package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/codeindex/codeindex/index"
	"github.com/codeindex/codeindex/profile"
)

// ProfileLoader resolves a profile path (as found in a Config's Profiles
// map) into a loaded LanguageProfile. Callers typically back this with
// profile.Load plus a filesystem read; kept as a function type so registry
// stays independent of how profiles are stored.
type ProfileLoader func(path string) (*profile.LanguageProfile, error)

// BuildProject implements a mixed-language run: route every input to a
// profile alias, index each group independently with index.Run, and
// assemble the results into one ProjectIndex sorted by profile_id.
// Per-group indexing runs are independent of each other; only the routing
// and final assembly are shared state.
func (r *Registry) BuildProject(ctx context.Context, projectRoot string, inputs []index.Input, load ProfileLoader, opts index.Options) (*index.ProjectIndex, error) {
	groups, diags := r.Route(inputs)

	aliases := make([]string, 0, len(groups))
	for alias := range groups {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	proj := &index.ProjectIndex{
		SchemaVersion: index.SchemaVersion,
		ProjectRoot:   projectRoot,
		GeneratedAt:   opts.GeneratedAt,
		EngineVersion: opts.EngineVersion,
		RegistryID:    r.id,
		Diagnostics:   diags,
	}

	for _, alias := range aliases {
		path, ok := r.ProfilePath(alias)
		if !ok {
			return nil, fmt.Errorf("registry %s: alias %q has no configured profile path", r.id, alias)
		}
		p, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("registry %s: loading profile for alias %q: %w", r.id, alias, err)
		}
		idx, err := index.Run(ctx, groups[alias], p, opts)
		if err != nil {
			return nil, fmt.Errorf("registry %s: indexing alias %q: %w", r.id, alias, err)
		}
		proj.Indexes = append(proj.Indexes, *idx)
	}

	sort.Slice(proj.Indexes, func(i, j int) bool {
		return proj.Indexes[i].ProfileID < proj.Indexes[j].ProfileID
	})

	proj.ProjectSHA256 = projectDigest(proj.Indexes)
	return proj, nil
}

// projectDigest folds every file's content hash into one top-level digest,
// so a caller can detect whether a full re-index changed anything without
// diffing the whole document. Files are already globally sorted by
// (profile_id, file_id) at this point, so the digest is order-stable.
func projectDigest(indexes []index.SymbolIndex) string {
	h := sha256.New()
	for _, idx := range indexes {
		for _, f := range idx.Files {
			fmt.Fprintf(h, "%s\x00%s\x00", f.FileID, f.SHA256)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
