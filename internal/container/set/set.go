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

package set

// Set represents a set data structure.
type Set[T comparable] map[T]struct{}

// New returns a set populated with keys.
func New[T comparable](keys ...T) Set[T] {
	s := make(Set[T], len(keys))
	for _, key := range keys {
		s.Add(key)
	}
	return s
}

// Add adds key into the set s.
func (s Set[T]) Add(key T) {
	s[key] = struct{}{}
}

// Contains returns true if the set s contains key.
func (s Set[T]) Contains(key T) bool {
	_, ok := s[key]
	return ok
}

// Intersects returns true if the set s contains any of keys.
func (s Set[T]) Intersects(keys ...T) bool {
	for _, key := range keys {
		if s.Contains(key) {
			return true
		}
	}
	return false
}
