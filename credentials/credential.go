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

// Package credentials provides the credential shapes recognized by repository
// transport validation, together with stores for resolving credentials per
// repository.
package credentials

import "sort"

// Kind identifies the shape of a credential value. A concrete credential
// carries exactly one kind.
type Kind string

const (
	// KindNone indicates that no credential is present.
	KindNone Kind = ""

	// KindPassword identifies username/password credentials.
	KindPassword Kind = "password"

	// KindHTTPHeader identifies credentials transmitted as a fixed HTTP
	// header.
	KindHTTPHeader Kind = "http-header"

	// KindAWSAccessKey identifies AWS access key credentials.
	KindAWSAccessKey Kind = "aws-access-key"

	// KindTLSKeyPair identifies client certificate credentials.
	KindTLSKeyPair Kind = "tls-key-pair"
)

// Credential is a secret value supplied for a repository configuration.
//
// The canonical implementations are [Password], [HTTPHeader], [AWSAccessKey]
// and [TLSKeyPair]. Values of any other type are rejected by [Normalize]:
// compatibility decisions are made by comparing kinds, never by inspecting
// arbitrary credential types.
type Credential interface {
	// Kind returns the kind of the credential.
	Kind() Kind
}

// Password is a username/password pair.
type Password struct {
	// Username is the name of the user.
	Username string

	// Password is the secret associated with the username.
	Password string
}

// Kind returns KindPassword.
func (Password) Kind() Kind {
	return KindPassword
}

// HTTPHeader is a credential transmitted as a fixed header on every request,
// e.g. a private token header.
type HTTPHeader struct {
	// Name is the name of the header.
	Name string

	// Value is the value of the header.
	Value string
}

// Kind returns KindHTTPHeader.
func (HTTPHeader) Kind() Kind {
	return KindHTTPHeader
}

// AWSAccessKey is an AWS access key pair with an optional session token.
// Reference: https://docs.aws.amazon.com/IAM/latest/UserGuide/id_credentials_access-keys.html
type AWSAccessKey struct {
	// AccessKeyID is the AWS access key ID.
	AccessKeyID string

	// SecretAccessKey is the AWS secret access key.
	SecretAccessKey string

	// SessionToken is the session token for temporary credentials. It may be
	// empty.
	SessionToken string
}

// Kind returns KindAWSAccessKey.
func (AWSAccessKey) Kind() Kind {
	return KindAWSAccessKey
}

// TLSKeyPair is a client certificate and its private key, both PEM encoded.
type TLSKeyPair struct {
	// CertPEM is the PEM encoded client certificate.
	CertPEM []byte

	// KeyPEM is the PEM encoded private key.
	KeyPEM []byte
}

// Kind returns KindTLSKeyPair.
func (TLSKeyPair) Kind() Kind {
	return KindTLSKeyPair
}

// canonicalTypeNames returns the names of the canonical credential types,
// sorted. They are used in diagnostics when a supplied value cannot be
// normalized.
func canonicalTypeNames() []string {
	names := []string{
		"credentials.Password",
		"credentials.HTTPHeader",
		"credentials.AWSAccessKey",
		"credentials.TLSKeyPair",
	}
	sort.Strings(names)
	return names
}
