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
	"sync"

	"github.com/opencontainers/go-digest"
	"wharf.land/wharf-go/internal/syncutil"
)

// transportCache shares validated transports between requests with equal
// fingerprints. Each fingerprint owns one once-cell, so concurrent first
// requests for the same configuration run a single validation and every
// later request returns the same handle. Failed validations are not cached;
// the next request with that fingerprint validates again.
type transportCache struct {
	status sync.Map // map[digest.Digest]*syncutil.Once[*Transport]
}

func newTransportCache() *transportCache {
	return &transportCache{}
}

// get returns the transport cached under key, building it with build on
// first use.
func (c *transportCache) get(key digest.Digest, build func() (*Transport, error)) (*Transport, error) {
	once, _ := c.status.LoadOrStore(key, &syncutil.Once[*Transport]{})
	return once.(*syncutil.Once[*Transport]).Do(build)
}
