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

// Package connector defines repository connectors and the registry that
// resolves requested URL schemes to the single connector able to serve them.
package connector

import (
	"wharf.land/wharf-go/auth"
)

// SchemeFile is the URL scheme of repositories on the local filesystem. It
// is served by the built-in [LocalFile] connector and cannot be claimed by a
// registered connector.
const SchemeFile = "file"

// Descriptor describes a repository connector: the URL schemes it serves and
// the authentication mechanisms it can apply. Implementations must be
// immutable; the registry resolves against the advertised values for the
// lifetime of the process.
type Descriptor interface {
	// Name returns the name of the connector, e.g. "http".
	Name() string

	// Schemes returns the URL schemes served by the connector.
	Schemes() []string

	// SupportedAuthentication returns the kinds of authentication the
	// connector can apply. A connector for unauthenticated access returns
	// nil.
	SupportedAuthentication() []auth.Kind
}

// LocalFile is the built-in connector for repositories on the local
// filesystem. It is always resolvable, requires no registration and supports
// no authentication.
var LocalFile Descriptor = localFile{}

type localFile struct{}

// Name returns "file".
func (localFile) Name() string {
	return "file"
}

// Schemes returns the single "file" scheme.
func (localFile) Schemes() []string {
	return []string{SchemeFile}
}

// SupportedAuthentication returns nil. Local file access is never
// authenticated.
func (localFile) SupportedAuthentication() []auth.Kind {
	return nil
}
