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

// Package http provides the repository connector for the http and https URL
// schemes.
package http

import (
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/connector"
)

// Connector describes the HTTP connector. It serves the http and https
// schemes and can apply basic, digest, header and TLS client certificate
// authentication.
var Connector connector.Descriptor = httpConnector{}

type httpConnector struct{}

// Name returns "http".
func (httpConnector) Name() string {
	return "http"
}

// Schemes returns the http and https schemes.
func (httpConnector) Schemes() []string {
	return []string{"http", "https"}
}

// SupportedAuthentication returns the authentication kinds the HTTP
// connector can apply.
func (httpConnector) SupportedAuthentication() []auth.Kind {
	return []auth.Kind{
		auth.KindBasic,
		auth.KindDigest,
		auth.KindHTTPHeader,
		auth.KindClientCertificate,
	}
}
