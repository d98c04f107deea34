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

// Package raceguard provides a cheap, always-on debug assertion for
// sections of code that are single-threaded by contract but not
// protected by a mutex — such as the post-merge aggregation step of the
// indexing pipeline, which must run only after every per-file worker has
// released its semaphore slot. It tags the goroutine that enters the
// section and panics if a second goroutine enters concurrently, catching
// a scheduling bug before it can silently corrupt output ordering.
package raceguard

import (
	"fmt"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Guard protects one logically single-threaded section. Its zero value
// is ready to use.
type Guard struct {
	owner atomic.Int64
}

// none is never a valid goroutine id (goid.Get returns positive ids).
const none = 0

// Enter records the calling goroutine as the section's owner. It panics
// if another goroutine is already inside the section.
func (g *Guard) Enter() {
	id := goid.Get()
	if !g.owner.CompareAndSwap(none, id) {
		current := g.owner.Load()
		if current != id {
			panic(fmt.Sprintf("raceguard: goroutine %d entered a section owned by goroutine %d", id, current))
		}
	}
}

// Exit releases the section, allowing a different goroutine to Enter it.
func (g *Guard) Exit() {
	g.owner.Store(none)
}
