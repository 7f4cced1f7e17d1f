/*
Copyright The Wharf Authors.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package syncutil

import (
	"sync"
	"sync/atomic"
)

// Once runs a function at most once successfully and caches its result.
// Unlike sync.Once, a failed attempt does not count: the next caller invokes
// the function again. Concurrent callers block until the in-flight attempt
// returns, so at most one invocation runs at any time.
type Once[T any] struct {
	lock   sync.Mutex
	done   atomic.Bool
	result T
}

// Do returns the cached result if a previous attempt succeeded. Otherwise it
// invokes f, caching the result on success only.
func (o *Once[T]) Do(f func() (T, error)) (T, error) {
	// fast path
	if o.done.Load() {
		return o.result, nil
	}

	// slow path
	o.lock.Lock()
	defer o.lock.Unlock()

	if o.done.Load() {
		return o.result, nil
	}
	result, err := f()
	if err != nil {
		var zero T
		return zero, err
	}
	o.result = result
	o.done.Store(true)
	return result, nil
}
