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

package wharf

import (
	"encoding/json"
	"sort"

	"github.com/opencontainers/go-digest"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/connector"
	"wharf.land/wharf-go/credentials"
)

// Transport is a validated repository transport: the proof that a repository
// configuration passed scheme resolution and authentication-compatibility
// validation. It carries the selected connector together with the normalized
// inputs, so the network-client layer can construct its clients without
// validating again.
//
// A Transport is immutable, holds no connections and performs no I/O. It does
// not record the repository name it was first requested for: equally
// configured repositories share one handle, and the name belongs to error
// messages and trace hooks instead.
type Transport struct {
	schemes        []string
	descriptor     connector.Descriptor
	credentials    credentials.Normalized
	authentication []auth.Authentication
	fingerprint    digest.Digest
}

// Schemes returns the requested URL schemes, deduplicated and sorted.
func (t *Transport) Schemes() []string {
	schemes := make([]string, len(t.schemes))
	copy(schemes, t.schemes)
	return schemes
}

// Connector returns the connector selected to serve the transport. For local
// repositories it is [connector.LocalFile].
func (t *Transport) Connector() connector.Descriptor {
	return t.descriptor
}

// Local returns true if the transport accesses the local file system rather
// than a network connector.
func (t *Transport) Local() bool {
	return t.descriptor == connector.LocalFile
}

// Credentials returns the normalized credentials of the transport.
func (t *Transport) Credentials() credentials.Normalized {
	return t.credentials
}

// Authentication returns the validated authentication mechanisms in declared
// order, deduplicated by kind.
func (t *Transport) Authentication() []auth.Authentication {
	mechanisms := make([]auth.Authentication, len(t.authentication))
	copy(mechanisms, t.authentication)
	return mechanisms
}

// Fingerprint returns the canonical identity of the transport configuration:
// a digest over the scheme set, the credentials and the authentication kind
// set. Two requests with equal fingerprints are interchangeable no matter
// which repositories they were made for, which is what lets a cache hand out
// one shared Transport for both.
func (t *Transport) Fingerprint() digest.Digest {
	return t.fingerprint
}

// fingerprintPayload is the canonical form a transport fingerprint is
// computed over. Field order is fixed by the struct, so the JSON encoding is
// deterministic.
type fingerprintPayload struct {
	Schemes        []string               `json:"schemes"`
	CredentialKind credentials.Kind       `json:"credentialKind,omitempty"`
	Credential     credentials.Credential `json:"credential,omitempty"`
	Authentication []string               `json:"authentication,omitempty"`
}

// computeFingerprint derives the transport identity from a normalized
// request. schemes must be sorted and deduplicated; mechanisms are reduced to
// their sorted kind set.
func computeFingerprint(schemes []string, cred credentials.Normalized, mechanisms []auth.Authentication) (digest.Digest, error) {
	kinds := make([]string, 0, len(mechanisms))
	for _, mechanism := range mechanisms {
		kinds = append(kinds, string(mechanism.Kind()))
	}
	sort.Strings(kinds)
	content, err := json.Marshal(fingerprintPayload{
		Schemes:        schemes,
		CredentialKind: cred.Kind(),
		Credential:     cred.Credential(),
		Authentication: kinds,
	})
	if err != nil {
		return "", err
	}
	return digest.FromBytes(content), nil
}
