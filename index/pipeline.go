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

package index

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/codeindex/codeindex/internal/raceguard"
	"github.com/codeindex/codeindex/profile"
)

// runFiles reads and tokenizes every input, bounding concurrency at
// MaxParallelism. Per-file work shares no mutable state, so it is safe to
// run out of order; the results are always re-sorted by file_id before
// anything touches the shared occurrence container — a raceguard trips if
// that invariant is ever violated by a future change.
func runFiles(ctx context.Context, inputs []Input, p *profile.LanguageProfile, maxParallelism int) ([]fileResult, error) {
	par := maxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
	}
	sem := semaphore.NewWeighted(int64(par))

	results := make([]fileResult, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, in := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: stop launching new work, let what's
			// already running finish below.
			errs[i] = err
			continue
		}
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			defer sem.Release(1)
			res, err := processFile(in, p)
			results[i] = res
			errs[i] = err
		}(i, in)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var guard raceguard.Guard
	guard.Enter()
	defer guard.Exit()

	sort.Slice(results, func(i, j int) bool {
		return results[i].input.FileID < results[j].input.FileID
	})
	return results, nil
}
