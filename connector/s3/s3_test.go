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

package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/errdef"
)

func normalize(t *testing.T, c credentials.Credential) credentials.Normalized {
	t.Helper()
	normalized, err := credentials.Normalize(c)
	if err != nil {
		t.Fatalf("credentials.Normalize() error = %v, wantErr false", err)
	}
	return normalized
}

func TestConnector(t *testing.T) {
	if got, want := Connector.Name(), "s3"; got != want {
		t.Errorf("Connector.Name() = %q, want %q", got, want)
	}
	if got, want := Connector.Schemes(), []string{"s3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Connector.Schemes() = %v, want %v", got, want)
	}
	if got, want := Connector.SupportedAuthentication(), []auth.Kind{auth.KindAWSSigV4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Connector.SupportedAuthentication() = %v, want %v", got, want)
	}
}

func TestNewClient_signing(t *testing.T) {
	key := credentials.AWSAccessKey{
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "s3cr3t",
		SessionToken:    "session",
	}
	client, err := NewClient(normalize(t, key), []auth.Authentication{auth.AWSSigV4{}})
	if err != nil {
		t.Fatalf("NewClient() error = %v, wantErr false", err)
	}

	retrieved, err := client.Options().Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Credentials.Retrieve() error = %v, wantErr false", err)
	}
	if retrieved.AccessKeyID != key.AccessKeyID {
		t.Errorf("AccessKeyID = %q, want %q", retrieved.AccessKeyID, key.AccessKeyID)
	}
	if retrieved.SecretAccessKey != key.SecretAccessKey {
		t.Errorf("SecretAccessKey = %q, want %q", retrieved.SecretAccessKey, key.SecretAccessKey)
	}
	if retrieved.SessionToken != key.SessionToken {
		t.Errorf("SessionToken = %q, want %q", retrieved.SessionToken, key.SessionToken)
	}
}

func TestNewClient_anonymous(t *testing.T) {
	client, err := NewClient(credentials.Normalized{}, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v, wantErr false", err)
	}
	if _, ok := client.Options().Credentials.(aws.AnonymousCredentials); !ok {
		t.Errorf("Credentials = %T, want %T", client.Options().Credentials, aws.AnonymousCredentials{})
	}
	if got, want := client.Options().Region, "us-east-1"; got != want {
		t.Errorf("Region = %q, want %q", got, want)
	}
}

func TestNewClient_options(t *testing.T) {
	client, err := NewClient(credentials.Normalized{}, nil,
		WithRegion("eu-west-1"),
		WithEndpoint("http://127.0.0.1:9000"),
		WithPathStyle(),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v, wantErr false", err)
	}
	options := client.Options()
	if got, want := options.Region, "eu-west-1"; got != want {
		t.Errorf("Region = %q, want %q", got, want)
	}
	if options.BaseEndpoint == nil || *options.BaseEndpoint != "http://127.0.0.1:9000" {
		t.Errorf("BaseEndpoint = %v, want %q", options.BaseEndpoint, "http://127.0.0.1:9000")
	}
	if !options.UsePathStyle {
		t.Error("UsePathStyle = false, want true")
	}
}

func TestNewClient_mismatchedCredentials(t *testing.T) {
	if _, err := NewClient(credentials.Normalized{}, []auth.Authentication{auth.AWSSigV4{}}); !errors.Is(err, errdef.ErrIncompatibleCredentials) {
		t.Errorf("NewClient() error = %v, want %v", err, errdef.ErrIncompatibleCredentials)
	}
	cred := normalize(t, credentials.AWSAccessKey{AccessKeyID: "id", SecretAccessKey: "secret"})
	if _, err := NewClient(cred, []auth.Authentication{auth.Basic{}}); !errors.Is(err, errdef.ErrUnsupportedAuthentication) {
		t.Errorf("NewClient() error = %v, want %v", err, errdef.ErrUnsupportedAuthentication)
	}
}

func TestNewClient_signedRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "AWS4-HMAC-SHA256") {
			t.Errorf("Authorization = %q, want AWS4-HMAC-SHA256 signature", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cred := normalize(t, credentials.AWSAccessKey{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "s3cr3t"})
	client, err := NewClient(cred, []auth.Authentication{auth.AWSSigV4{}},
		WithEndpoint(ts.URL),
		WithPathStyle(),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v, wantErr false", err)
	}

	resp, err := client.GetObject(context.Background(), &awss3.GetObjectInput{
		Bucket: aws.String("releases"),
		Key:    aws.String("com/example/lib/1.0/lib-1.0.jar"),
	})
	if err != nil {
		t.Fatalf("GetObject() error = %v, wantErr false", err)
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		t.Fatalf("failed to drain response: %v", err)
	}
}
