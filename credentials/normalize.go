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
	"fmt"

	"wharf.land/wharf-go/errdef"
)

// Normalized is the canonical representation of an optional credential. The
// zero value represents "no credentials", which is always a valid
// configuration.
type Normalized struct {
	credential Credential
}

// Normalize maps c to its canonical representation. A nil credential
// normalizes to the empty Normalized. A value outside the canonical types
// fails with [errdef.InvalidCredentialsTypeError].
func Normalize(c Credential) (Normalized, error) {
	switch cred := c.(type) {
	case nil:
		return Normalized{}, nil
	case Password:
		return Normalized{credential: cred}, nil
	case *Password:
		if cred == nil {
			return Normalized{}, nil
		}
		return Normalized{credential: *cred}, nil
	case HTTPHeader:
		return Normalized{credential: cred}, nil
	case *HTTPHeader:
		if cred == nil {
			return Normalized{}, nil
		}
		return Normalized{credential: *cred}, nil
	case AWSAccessKey:
		return Normalized{credential: cred}, nil
	case *AWSAccessKey:
		if cred == nil {
			return Normalized{}, nil
		}
		return Normalized{credential: *cred}, nil
	case TLSKeyPair:
		return Normalized{credential: cred}, nil
	case *TLSKeyPair:
		if cred == nil {
			return Normalized{}, nil
		}
		return Normalized{credential: *cred}, nil
	default:
		return Normalized{}, &errdef.InvalidCredentialsTypeError{
			Expected: canonicalTypeNames(),
			Actual:   fmt.Sprintf("%T", c),
		}
	}
}

// Empty returns true if no credential is present.
func (n Normalized) Empty() bool {
	return n.credential == nil
}

// Kind returns the kind of the normalized credential, or KindNone if no
// credential is present.
func (n Normalized) Kind() Kind {
	if n.credential == nil {
		return KindNone
	}
	return n.credential.Kind()
}

// Credential returns the canonical credential value, or nil if no credential
// is present.
func (n Normalized) Credential() Credential {
	return n.credential
}

// Password returns the credential as a Password, reporting whether the
// credential is of that kind.
func (n Normalized) Password() (Password, bool) {
	cred, ok := n.credential.(Password)
	return cred, ok
}

// HTTPHeader returns the credential as an HTTPHeader, reporting whether the
// credential is of that kind.
func (n Normalized) HTTPHeader() (HTTPHeader, bool) {
	cred, ok := n.credential.(HTTPHeader)
	return cred, ok
}

// AWSAccessKey returns the credential as an AWSAccessKey, reporting whether
// the credential is of that kind.
func (n Normalized) AWSAccessKey() (AWSAccessKey, bool) {
	cred, ok := n.credential.(AWSAccessKey)
	return cred, ok
}

// TLSKeyPair returns the credential as a TLSKeyPair, reporting whether the
// credential is of that kind.
func (n Normalized) TLSKeyPair() (TLSKeyPair, bool) {
	cred, ok := n.credential.(TLSKeyPair)
	return cred, ok
}
