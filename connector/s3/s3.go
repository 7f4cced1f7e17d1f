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

// Package s3 provides the repository connector for the s3 URL scheme.
package s3

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/connector"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/errdef"
)

// defaultRegion is used when the repository declares no region.
const defaultRegion = "us-east-1"

// Connector describes the S3 connector. It serves the s3 scheme and
// authenticates by signing requests with access key credentials.
var Connector connector.Descriptor = s3Connector{}

type s3Connector struct{}

// Name returns "s3".
func (s3Connector) Name() string {
	return "s3"
}

// Schemes returns the s3 scheme.
func (s3Connector) Schemes() []string {
	return []string{"s3"}
}

// SupportedAuthentication returns the authentication kinds the S3 connector
// can apply.
func (s3Connector) SupportedAuthentication() []auth.Kind {
	return []auth.Kind{auth.KindAWSSigV4}
}

// ClientOption adjusts the construction of an S3 client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	region       string
	endpoint     string
	usePathStyle bool
	httpClient   s3.HTTPClient
}

// WithRegion sets the bucket region. The default is us-east-1.
func WithRegion(region string) ClientOption {
	return func(o *clientOptions) {
		o.region = region
	}
}

// WithEndpoint points the client at an S3-compatible endpoint instead of
// AWS.
func WithEndpoint(endpoint string) ClientOption {
	return func(o *clientOptions) {
		o.endpoint = endpoint
	}
}

// WithPathStyle addresses buckets by path rather than by virtual host. Most
// S3-compatible servers require it.
func WithPathStyle() ClientOption {
	return func(o *clientOptions) {
		o.usePathStyle = true
	}
}

// WithHTTPClient sets the HTTP client performing the requests.
func WithHTTPClient(client s3.HTTPClient) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// NewClient builds the S3 client of a validated s3 repository transport.
// Without request signing the client accesses buckets anonymously.
//
// The mechanisms are expected to have passed transport validation against
// cred; NewClient fails on a mechanism whose credential requirements cred
// cannot satisfy.
func NewClient(cred credentials.Normalized, mechanisms []auth.Authentication, opts ...ClientOption) (*s3.Client, error) {
	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	provider := aws.CredentialsProvider(aws.AnonymousCredentials{})
	for _, mechanism := range mechanisms {
		switch mechanism.Kind() {
		case auth.KindAWSSigV4:
			key, ok := cred.AWSAccessKey()
			if !ok {
				return nil, &errdef.IncompatibleCredentialsError{
					CredentialsKind:    string(cred.Kind()),
					AuthenticationKind: string(mechanism.Kind()),
				}
			}
			provider = awscredentials.NewStaticCredentialsProvider(key.AccessKeyID, key.SecretAccessKey, key.SessionToken)
		default:
			return nil, &errdef.UnsupportedAuthenticationError{
				AuthenticationKind: string(mechanism.Kind()),
				Schemes:            Connector.Schemes(),
			}
		}
	}

	s3Options := s3.Options{
		Region:       options.region,
		Credentials:  provider,
		UsePathStyle: options.usePathStyle,
	}
	if s3Options.Region == "" {
		s3Options.Region = defaultRegion
	}
	if options.endpoint != "" {
		s3Options.BaseEndpoint = aws.String(options.endpoint)
	}
	if options.httpClient != nil {
		s3Options.HTTPClient = options.httpClient
	}
	return s3.New(s3Options), nil
}
