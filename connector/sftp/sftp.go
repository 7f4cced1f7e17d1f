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

// Package sftp provides the repository connector for the sftp URL scheme.
package sftp

import (
	"net"
	"net/url"
	"time"

	"golang.org/x/crypto/ssh"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/connector"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/errdef"
)

// defaultPort is the well-known SSH port.
const defaultPort = "22"

// Connector describes the SFTP connector. It serves the sftp scheme and
// authenticates with password credentials only.
var Connector connector.Descriptor = sftpConnector{}

type sftpConnector struct{}

// Name returns "sftp".
func (sftpConnector) Name() string {
	return "sftp"
}

// Schemes returns the sftp scheme.
func (sftpConnector) Schemes() []string {
	return []string{"sftp"}
}

// SupportedAuthentication returns the authentication kinds the SFTP
// connector can apply.
func (sftpConnector) SupportedAuthentication() []auth.Kind {
	return []auth.Kind{auth.KindBasic}
}

// ClientOption adjusts the construction of an SSH client configuration.
type ClientOption func(*clientOptions)

type clientOptions struct {
	hostKeyCallback ssh.HostKeyCallback
	timeout         time.Duration
}

// WithHostKeyCallback pins the expected host key of the repository server.
func WithHostKeyCallback(callback ssh.HostKeyCallback) ClientOption {
	return func(o *clientOptions) {
		o.hostKeyCallback = callback
	}
}

// WithTimeout bounds connection establishment.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// NewClientConfig builds the SSH client configuration of a validated sftp
// repository transport. Unless a host key is pinned with
// WithHostKeyCallback, the server host key is not verified.
//
// The mechanisms are expected to have passed transport validation against
// cred; NewClientConfig fails on a mechanism whose credential requirements
// cred cannot satisfy.
func NewClientConfig(cred credentials.Normalized, mechanisms []auth.Authentication, opts ...ClientOption) (*ssh.ClientConfig, error) {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	config := &ssh.ClientConfig{
		HostKeyCallback: options.hostKeyCallback,
		Timeout:         options.timeout,
	}
	if config.HostKeyCallback == nil {
		config.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	for _, mechanism := range mechanisms {
		switch mechanism.Kind() {
		case auth.KindBasic:
			password, ok := cred.Password()
			if !ok {
				return nil, &errdef.IncompatibleCredentialsError{
					CredentialsKind:    string(cred.Kind()),
					AuthenticationKind: string(mechanism.Kind()),
				}
			}
			config.User = password.Username
			config.Auth = append(config.Auth, ssh.Password(password.Password))
		default:
			return nil, &errdef.UnsupportedAuthenticationError{
				AuthenticationKind: string(mechanism.Kind()),
				Schemes:            Connector.Schemes(),
			}
		}
	}
	return config, nil
}

// Address returns the dial address of an sftp repository URL, applying the
// default SSH port when the URL does not carry one.
func Address(u *url.URL) string {
	if u.Port() == "" {
		return net.JoinHostPort(u.Hostname(), defaultPort)
	}
	return u.Host
}
