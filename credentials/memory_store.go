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

package credentials

import (
	"context"
	"sync"
)

// memoryStore is a store that keeps credentials in memory.
type memoryStore struct {
	store sync.Map // map[string]Credential
}

// NewMemoryStore creates a new in-memory credentials store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

// Get retrieves the credential for the given repository.
func (ms *memoryStore) Get(_ context.Context, repository string) (Credential, error) {
	cred, found := ms.store.Load(repository)
	if !found {
		return nil, nil
	}
	return cred.(Credential), nil
}

// Put saves the credential for the given repository. The credential is
// normalized before storing, so only canonical credential shapes are
// accepted.
func (ms *memoryStore) Put(_ context.Context, repository string, cred Credential) error {
	normalized, err := Normalize(cred)
	if err != nil {
		return err
	}
	if normalized.Empty() {
		ms.store.Delete(repository)
		return nil
	}
	ms.store.Store(repository, normalized.Credential())
	return nil
}

// Delete removes the credential for the given repository.
func (ms *memoryStore) Delete(_ context.Context, repository string) error {
	ms.store.Delete(repository)
	return nil
}
