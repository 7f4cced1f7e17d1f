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

// Package auth defines the authentication mechanisms repository connectors
// can apply, and the credential kinds each mechanism accepts. Compatibility
// is decided by comparing kinds, never by reflecting over credential types.
package auth

import (
	"fmt"

	"wharf.land/wharf-go/credentials"
)

// Kind identifies an authentication mechanism.
type Kind string

const (
	// KindBasic identifies HTTP basic access authentication.
	KindBasic Kind = "basic"

	// KindDigest identifies HTTP digest access authentication.
	KindDigest Kind = "digest"

	// KindHTTPHeader identifies authentication via a preconfigured HTTP
	// header.
	KindHTTPHeader Kind = "http-header"

	// KindAWSSigV4 identifies AWS Signature Version 4 request signing.
	KindAWSSigV4 Kind = "aws-sig-v4"

	// KindClientCertificate identifies TLS client certificate
	// authentication.
	KindClientCertificate Kind = "client-certificate"
)

// Authentication describes a mechanism for proving identity to a remote
// repository. Implementations advertise the credential kinds they can
// operate with.
type Authentication interface {
	// Kind returns the kind of the authentication mechanism.
	Kind() Kind

	// AcceptedCredentials returns the credential kinds usable with the
	// mechanism.
	AcceptedCredentials() []credentials.Kind
}

// Basic is HTTP basic access authentication.
// Reference: https://datatracker.ietf.org/doc/html/rfc7617
type Basic struct{}

// Kind returns KindBasic.
func (Basic) Kind() Kind {
	return KindBasic
}

// AcceptedCredentials returns the credential kinds accepted by basic
// authentication.
func (Basic) AcceptedCredentials() []credentials.Kind {
	return []credentials.Kind{credentials.KindPassword}
}

// Digest is HTTP digest access authentication.
// Reference: https://datatracker.ietf.org/doc/html/rfc7616
type Digest struct{}

// Kind returns KindDigest.
func (Digest) Kind() Kind {
	return KindDigest
}

// AcceptedCredentials returns the credential kinds accepted by digest
// authentication.
func (Digest) AcceptedCredentials() []credentials.Kind {
	return []credentials.Kind{credentials.KindPassword}
}

// HTTPHeader authenticates by sending a preconfigured header on every
// request, e.g. a private token header.
type HTTPHeader struct{}

// Kind returns KindHTTPHeader.
func (HTTPHeader) Kind() Kind {
	return KindHTTPHeader
}

// AcceptedCredentials returns the credential kinds accepted by header
// authentication.
func (HTTPHeader) AcceptedCredentials() []credentials.Kind {
	return []credentials.Kind{credentials.KindHTTPHeader}
}

// AWSSigV4 signs requests with AWS Signature Version 4.
// Reference: https://docs.aws.amazon.com/IAM/latest/UserGuide/reference_aws-signing.html
type AWSSigV4 struct{}

// Kind returns KindAWSSigV4.
func (AWSSigV4) Kind() Kind {
	return KindAWSSigV4
}

// AcceptedCredentials returns the credential kinds accepted by request
// signing.
func (AWSSigV4) AcceptedCredentials() []credentials.Kind {
	return []credentials.Kind{credentials.KindAWSAccessKey}
}

// ClientCertificate authenticates with a TLS client certificate during the
// handshake.
type ClientCertificate struct{}

// Kind returns KindClientCertificate.
func (ClientCertificate) Kind() Kind {
	return KindClientCertificate
}

// AcceptedCredentials returns the credential kinds accepted by client
// certificate authentication.
func (ClientCertificate) AcceptedCredentials() []credentials.Kind {
	return []credentials.Kind{credentials.KindTLSKeyPair}
}

// Accepts reports whether the authentication mechanism a accepts credentials
// of kind k.
func Accepts(a Authentication, k credentials.Kind) bool {
	for _, accepted := range a.AcceptedCredentials() {
		if accepted == k {
			return true
		}
	}
	return false
}

// Parse maps the name of an authentication protocol to its mechanism.
func Parse(name string) (Authentication, error) {
	switch Kind(name) {
	case KindBasic:
		return Basic{}, nil
	case KindDigest:
		return Digest{}, nil
	case KindHTTPHeader:
		return HTTPHeader{}, nil
	case KindAWSSigV4:
		return AWSSigV4{}, nil
	case KindClientCertificate:
		return ClientCertificate{}, nil
	default:
		return nil, fmt.Errorf("unknown authentication protocol %q", name)
	}
}
