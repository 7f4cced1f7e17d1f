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

package http

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/docker/go-connections/tlsconfig"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/errdef"
	"wharf.land/wharf-go/retry"
)

// ClientOption adjusts the construction of a repository HTTP client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	base       http.RoundTripper
	tlsOptions *tlsconfig.Options
}

// WithBaseTransport sets the transport performing the actual round trips,
// e.g. for proxying or testing. By default a clone of http.DefaultTransport
// is used.
func WithBaseTransport(base http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.base = base
	}
}

// WithTLSOptions configures server trust from PEM files on disk.
func WithTLSOptions(options tlsconfig.Options) ClientOption {
	return func(o *clientOptions) {
		o.tlsOptions = &options
	}
}

// NewClient builds the HTTP client of a validated repository transport. The
// returned client retries transient failures and applies cred through the
// given authentication mechanisms on every request.
//
// The mechanisms are expected to have passed transport validation against
// cred; NewClient fails on a mechanism whose credential requirements cred
// cannot satisfy.
func NewClient(cred credentials.Normalized, mechanisms []auth.Authentication, opts ...ClientOption) (*http.Client, error) {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	var tlsConfig *tls.Config
	if options.tlsOptions != nil {
		var err error
		tlsConfig, err = tlsconfig.Client(*options.tlsOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	} else {
		tlsConfig = tlsconfig.ClientDefault()
	}

	// TLS client certificates take effect during the handshake, so they are
	// installed before the base transport is built.
	for _, mechanism := range mechanisms {
		if mechanism.Kind() != auth.KindClientCertificate {
			continue
		}
		pair, ok := cred.TLSKeyPair()
		if !ok {
			return nil, credentialMismatch(cred, mechanism)
		}
		certificate, err := tls.X509KeyPair(pair.CertPEM, pair.KeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS client certificate: %w", err)
		}
		tlsConfig.Certificates = append(tlsConfig.Certificates, certificate)
	}

	rt := options.base
	if rt == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsConfig
		rt = transport
	}

	for _, mechanism := range mechanisms {
		switch mechanism.Kind() {
		case auth.KindBasic:
			password, ok := cred.Password()
			if !ok {
				return nil, credentialMismatch(cred, mechanism)
			}
			rt = &basicTransport{
				base:     rt,
				username: password.Username,
				password: password.Password,
			}
		case auth.KindDigest:
			password, ok := cred.Password()
			if !ok {
				return nil, credentialMismatch(cred, mechanism)
			}
			rt = &digestTransport{
				base:     rt,
				username: password.Username,
				password: password.Password,
			}
		case auth.KindHTTPHeader:
			header, ok := cred.HTTPHeader()
			if !ok {
				return nil, credentialMismatch(cred, mechanism)
			}
			rt = &headerTransport{
				base:  rt,
				name:  header.Name,
				value: header.Value,
			}
		case auth.KindClientCertificate:
			// installed above
		default:
			return nil, &errdef.UnsupportedAuthenticationError{
				AuthenticationKind: string(mechanism.Kind()),
				Schemes:            Connector.Schemes(),
			}
		}
	}

	return &http.Client{
		Transport: retry.NewTransport(rt),
	}, nil
}

func credentialMismatch(cred credentials.Normalized, mechanism auth.Authentication) error {
	return &errdef.IncompatibleCredentialsError{
		CredentialsKind:    string(cred.Kind()),
		AuthenticationKind: string(mechanism.Kind()),
	}
}

// basicTransport applies basic authentication preemptively.
type basicTransport struct {
	base     http.RoundTripper
	username string
	password string
}

// RoundTrip executes req with an Authorization header attached.
func (t *basicTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(req)
}

// headerTransport attaches a preconfigured header to every request.
type headerTransport struct {
	base  http.RoundTripper
	name  string
	value string
}

// RoundTrip executes req with the configured header attached.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(t.name, t.value)
	return t.base.RoundTrip(req)
}
