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

package auth

import (
	"reflect"
	"testing"

	"wharf.land/wharf-go/credentials"
)

func TestAuthentication_Kind(t *testing.T) {
	tests := []struct {
		name           string
		authentication Authentication
		want           Kind
		wantAccepted   []credentials.Kind
	}{
		{
			name:           "basic",
			authentication: Basic{},
			want:           KindBasic,
			wantAccepted:   []credentials.Kind{credentials.KindPassword},
		},
		{
			name:           "digest",
			authentication: Digest{},
			want:           KindDigest,
			wantAccepted:   []credentials.Kind{credentials.KindPassword},
		},
		{
			name:           "http header",
			authentication: HTTPHeader{},
			want:           KindHTTPHeader,
			wantAccepted:   []credentials.Kind{credentials.KindHTTPHeader},
		},
		{
			name:           "aws sig v4",
			authentication: AWSSigV4{},
			want:           KindAWSSigV4,
			wantAccepted:   []credentials.Kind{credentials.KindAWSAccessKey},
		},
		{
			name:           "client certificate",
			authentication: ClientCertificate{},
			want:           KindClientCertificate,
			wantAccepted:   []credentials.Kind{credentials.KindTLSKeyPair},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.authentication.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
			if got := tt.authentication.AcceptedCredentials(); !reflect.DeepEqual(got, tt.wantAccepted) {
				t.Errorf("AcceptedCredentials() = %v, want %v", got, tt.wantAccepted)
			}
		})
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name           string
		authentication Authentication
		kind           credentials.Kind
		want           bool
	}{
		{
			name:           "basic accepts password",
			authentication: Basic{},
			kind:           credentials.KindPassword,
			want:           true,
		},
		{
			name:           "basic rejects header",
			authentication: Basic{},
			kind:           credentials.KindHTTPHeader,
			want:           false,
		},
		{
			name:           "signing accepts access key",
			authentication: AWSSigV4{},
			kind:           credentials.KindAWSAccessKey,
			want:           true,
		},
		{
			name:           "client certificate rejects password",
			authentication: ClientCertificate{},
			kind:           credentials.KindPassword,
			want:           false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accepts(tt.authentication, tt.kind); got != tt.want {
				t.Errorf("Accepts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Authentication
		wantErr bool
	}{
		{name: "basic", want: Basic{}},
		{name: "digest", want: Digest{}},
		{name: "http-header", want: HTTPHeader{}},
		{name: "aws-sig-v4", want: AWSSigV4{}},
		{name: "client-certificate", want: ClientCertificate{}},
		{name: "kerberos", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}
