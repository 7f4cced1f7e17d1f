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

import "context"

// Store is the interface that any credentials provider must implement. The
// origin of the credentials (settings file, environment, keyring) is
// irrelevant to transport validation; a Store only resolves them.
type Store interface {
	// Get retrieves the credential for the given repository. A nil credential
	// with a nil error means the store holds no credential for the
	// repository, which is a valid configuration.
	Get(ctx context.Context, repository string) (Credential, error)

	// Put saves the credential for the given repository.
	Put(ctx context.Context, repository string, cred Credential) error

	// Delete removes the credential for the given repository.
	Delete(ctx context.Context, repository string) error
}

// storeWithFallbacks is a store that has multiple fallback stores.
type storeWithFallbacks struct {
	stores []Store
}

// NewStoreWithFallbacks returns a new store based on the given stores.
//   - Get() searches the primary and the fallback stores in order and returns
//     the first credential found.
//   - Put() saves the credential into the primary store.
//   - Delete() deletes the credential from the primary store.
func NewStoreWithFallbacks(primary Store, fallbacks ...Store) Store {
	if len(fallbacks) == 0 {
		return primary
	}
	return &storeWithFallbacks{
		stores: append([]Store{primary}, fallbacks...),
	}
}

// Get retrieves the credential for the given repository. The stores are
// searched in the order they were passed to NewStoreWithFallbacks.
func (s *storeWithFallbacks) Get(ctx context.Context, repository string) (Credential, error) {
	for _, store := range s.stores {
		cred, err := store.Get(ctx, repository)
		if err != nil {
			return nil, err
		}
		if cred != nil {
			return cred, nil
		}
	}
	return nil, nil
}

// Put saves the credential for the given repository in the primary store.
func (s *storeWithFallbacks) Put(ctx context.Context, repository string, cred Credential) error {
	return s.stores[0].Put(ctx, repository, cred)
}

// Delete removes the credential for the given repository from the primary
// store.
func (s *storeWithFallbacks) Delete(ctx context.Context, repository string) error {
	return s.stores[0].Delete(ctx, repository)
}
