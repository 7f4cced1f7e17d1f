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

package sftp

import (
	"errors"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/ssh"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/errdef"
)

type ClientConfigSuite struct {
	suite.Suite
}

func (suite *ClientConfigSuite) normalize(c credentials.Credential) credentials.Normalized {
	normalized, err := credentials.Normalize(c)
	suite.Require().NoError(err)
	return normalized
}

func (suite *ClientConfigSuite) TestConnector() {
	suite.Equal("sftp", Connector.Name())
	suite.Equal([]string{"sftp"}, Connector.Schemes())
	suite.Equal([]auth.Kind{auth.KindBasic}, Connector.SupportedAuthentication())
}

func (suite *ClientConfigSuite) TestNewClientConfig() {
	config, err := NewClientConfig(
		suite.normalize(credentials.Password{Username: "alice", Password: "secret"}),
		[]auth.Authentication{auth.Basic{}},
		WithTimeout(5*time.Second),
	)
	suite.Require().NoError(err)
	suite.Equal("alice", config.User, "the username is taken from the credentials")
	suite.Len(config.Auth, 1, "password authentication is configured")
	suite.Equal(5*time.Second, config.Timeout, "the timeout is applied")
	suite.NotNil(config.HostKeyCallback, "an unpinned host key is tolerated")
	suite.NoError(config.HostKeyCallback("host", nil, nil))
}

func (suite *ClientConfigSuite) TestNewClientConfigHostKeyCallback() {
	errPinned := errors.New("host key mismatch")
	config, err := NewClientConfig(
		suite.normalize(credentials.Password{Username: "alice", Password: "secret"}),
		[]auth.Authentication{auth.Basic{}},
		WithHostKeyCallback(func(hostname string, remote net.Addr, key ssh.PublicKey) error {
			return errPinned
		}),
	)
	suite.Require().NoError(err)
	suite.ErrorIs(config.HostKeyCallback("host", nil, nil), errPinned, "the pinned callback is used")
}

func (suite *ClientConfigSuite) TestNewClientConfigRejectsMismatchedCredentials() {
	_, err := NewClientConfig(credentials.Normalized{}, []auth.Authentication{auth.Basic{}})
	suite.ErrorIs(err, errdef.ErrIncompatibleCredentials, "missing credentials cannot satisfy basic authentication")

	_, err = NewClientConfig(
		suite.normalize(credentials.Password{Username: "alice", Password: "secret"}),
		[]auth.Authentication{auth.AWSSigV4{}},
	)
	suite.ErrorIs(err, errdef.ErrUnsupportedAuthentication, "request signing is not applicable to sftp")
}

func (suite *ClientConfigSuite) TestAddress() {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "default port", url: "sftp://repo.example.com/releases", want: "repo.example.com:22"},
		{name: "explicit port", url: "sftp://repo.example.com:2222/releases", want: "repo.example.com:2222"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			u, err := url.Parse(tt.url)
			suite.Require().NoError(err)
			suite.Equal(tt.want, Address(u))
		})
	}
}

func TestClientConfigSuite(t *testing.T) {
	suite.Run(t, new(ClientConfigSuite))
}
