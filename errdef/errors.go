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

// Package errdef defines the error taxonomy of repository transport
// validation. Every failure is a static configuration mismatch, never a
// transient condition, so none of these errors is retriable.
package errdef

import (
	"errors"
	"sort"
	"strings"
)

// Common errors returned by transport validation. The structured error types
// below unwrap to these sentinels so that callers can classify failures with
// [errors.Is] without inspecting messages.
var (
	ErrUnsupportedScheme         = errors.New("unsupported repository protocol")
	ErrMixedSchemes              = errors.New("mixed URL schemes")
	ErrInvalidCredentialsType    = errors.New("invalid credentials type")
	ErrMissingCredentials        = errors.New("missing credentials")
	ErrUnsupportedAuthentication = errors.New("unsupported authentication protocol")
	ErrIncompatibleCredentials   = errors.New("incompatible credentials")
)

// UnsupportedSchemeError is returned when a requested URL scheme is served by
// no registered connector nor by the built-in local file handler.
type UnsupportedSchemeError struct {
	// RepositoryName is the name of the offending repository, if declared.
	RepositoryName string

	// Scheme is the requested scheme that is not registered.
	Scheme string

	// ValidSchemes enumerates every scheme registered at the time of the
	// failure. It is rendered sorted so the message is reproducible across
	// runs against an identical registry.
	ValidSchemes []string
}

// Error returns the error message of e.
func (e *UnsupportedSchemeError) Error() string {
	return repositoryPrefix(e.RepositoryName) +
		"not a supported repository protocol '" + e.Scheme +
		"': valid protocols are " + protocolList(e.ValidSchemes)
}

// Unwrap returns ErrUnsupportedScheme.
func (e *UnsupportedSchemeError) Unwrap() error {
	return ErrUnsupportedScheme
}

// MixedSchemeError is returned when the requested schemes span more than one
// connector, or mix local file access with a network scheme.
type MixedSchemeError struct {
	// RepositoryName is the name of the offending repository, if declared.
	RepositoryName string

	// Schemes holds the requested schemes, deduplicated and sorted.
	Schemes []string
}

// Error returns the error message of e.
func (e *MixedSchemeError) Error() string {
	return repositoryPrefix(e.RepositoryName) +
		"you cannot mix different URL schemes for a single repository; declare separate repositories"
}

// Unwrap returns ErrMixedSchemes.
func (e *MixedSchemeError) Unwrap() error {
	return ErrMixedSchemes
}

// InvalidCredentialsTypeError is returned when a supplied credentials value
// cannot be represented by any recognized credentials kind.
type InvalidCredentialsTypeError struct {
	// Expected names the canonical credential types that would have been
	// accepted, rendered sorted.
	Expected []string

	// Actual describes the supplied value.
	Actual string
}

// Error returns the error message of e.
func (e *InvalidCredentialsTypeError) Error() string {
	return "credentials must be an instance of: " + strings.Join(sorted(e.Expected), ", ")
}

// Unwrap returns ErrInvalidCredentialsType.
func (e *InvalidCredentialsTypeError) Unwrap() error {
	return ErrInvalidCredentialsType
}

// MissingCredentialsError is returned when authentication protocols are
// declared for a repository configured without credentials.
type MissingCredentialsError struct{}

// Error returns the error message of e.
func (e *MissingCredentialsError) Error() string {
	return "you cannot configure authentication protocols for a repository if no credentials are provided"
}

// Unwrap returns ErrMissingCredentials.
func (e *MissingCredentialsError) Unwrap() error {
	return ErrMissingCredentials
}

// UnsupportedAuthenticationError is returned when a declared authentication
// protocol is not supported by the connector selected for the request.
type UnsupportedAuthenticationError struct {
	// AuthenticationKind is the declared authentication protocol.
	AuthenticationKind string

	// Schemes holds the full requested scheme set, deduplicated and sorted.
	Schemes []string
}

// Error returns the error message of e.
func (e *UnsupportedAuthenticationError) Error() string {
	return "authentication protocol '" + e.AuthenticationKind +
		"' is not supported by protocols " + protocolList(e.Schemes)
}

// Unwrap returns ErrUnsupportedAuthentication.
func (e *UnsupportedAuthenticationError) Unwrap() error {
	return ErrUnsupportedAuthentication
}

// IncompatibleCredentialsError is returned when the supplied credentials kind
// is not accepted by a declared authentication protocol.
type IncompatibleCredentialsError struct {
	// CredentialsKind is the kind of the supplied credentials.
	CredentialsKind string

	// AuthenticationKind is the authentication protocol rejecting them.
	AuthenticationKind string
}

// Error returns the error message of e.
func (e *IncompatibleCredentialsError) Error() string {
	return "credentials type '" + e.CredentialsKind +
		"' is not supported by authentication protocol '" + e.AuthenticationKind + "'"
}

// Unwrap returns ErrIncompatibleCredentials.
func (e *IncompatibleCredentialsError) Unwrap() error {
	return ErrIncompatibleCredentials
}

// repositoryPrefix renders the optional repository name context of a message.
func repositoryPrefix(name string) string {
	if name == "" {
		return ""
	}
	return "repository '" + name + "': "
}

// protocolList renders schemes as a sorted, bracketed list, e.g.
// "[file, http, https]".
func protocolList(schemes []string) string {
	return "[" + strings.Join(sorted(schemes), ", ") + "]"
}

// sorted returns a sorted copy of items, leaving the input untouched.
func sorted(items []string) []string {
	s := make([]string, len(items))
	copy(s, items)
	sort.Strings(s)
	return s
}
