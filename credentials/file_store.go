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

package credentials

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"wharf.land/wharf-go/credentials/internal/config"
	"wharf.land/wharf-go/errdef"
)

// FileStore implements a credentials store backed by a single JSON file.
// Credentials are stored in plaintext, keyed by repository name or URL.
type FileStore struct {
	// DisablePut disables putting credentials in plaintext. If DisablePut is
	// set to true, Put() returns ErrPlaintextPutDisabled.
	DisablePut bool

	config *config.Config
}

var _ Store = (*FileStore)(nil)

// ErrPlaintextPutDisabled is returned by Put() when DisablePut is set to
// true.
var ErrPlaintextPutDisabled = errors.New("putting plaintext credentials is disabled")

// NewFileStore creates a new file credentials store. A missing file is not an
// error; it is created on the first Put.
func NewFileStore(configPath string) (*FileStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load credentials file")
	}
	return &FileStore{config: cfg}, nil
}

// Get retrieves the credential for the given repository.
func (fs *FileStore) Get(_ context.Context, repository string) (Credential, error) {
	cred, err := fs.config.GetCredential(repository)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get credential for %s", repository)
	}
	return decodeCredential(cred)
}

// Put saves the credential for the given repository. Putting a nil credential
// removes the stored entry.
func (fs *FileStore) Put(_ context.Context, repository string, cred Credential) error {
	if fs.DisablePut {
		return ErrPlaintextPutDisabled
	}
	if repository == "" {
		return errors.New("missing repository name")
	}
	normalized, err := Normalize(cred)
	if err != nil {
		return err
	}
	if normalized.Empty() {
		return fs.Delete(context.Background(), repository)
	}
	return errors.Wrapf(
		fs.config.PutCredential(repository, encodeCredential(normalized.Credential())),
		"failed to store credential for %s", repository)
}

// Delete removes the credential for the given repository.
func (fs *FileStore) Delete(_ context.Context, repository string) error {
	return errors.Wrapf(fs.config.DeleteCredential(repository), "failed to delete credential for %s", repository)
}

// decodeCredential maps a serialized credential to its canonical value. An
// empty record decodes to nil.
func decodeCredential(cred config.Credential) (Credential, error) {
	if cred.IsEmpty() {
		return nil, nil
	}
	switch Kind(cred.Kind) {
	case KindPassword:
		return Password{
			Username: cred.Username,
			Password: cred.Password,
		}, nil
	case KindHTTPHeader:
		return HTTPHeader{
			Name:  cred.HeaderName,
			Value: cred.HeaderValue,
		}, nil
	case KindAWSAccessKey:
		return AWSAccessKey{
			AccessKeyID:     cred.AccessKeyID,
			SecretAccessKey: cred.SecretAccessKey,
			SessionToken:    cred.SessionToken,
		}, nil
	case KindTLSKeyPair:
		return TLSKeyPair{
			CertPEM: []byte(cred.CertPEM),
			KeyPEM:  []byte(cred.KeyPEM),
		}, nil
	default:
		return nil, &errdef.InvalidCredentialsTypeError{
			Expected: canonicalTypeNames(),
			Actual:   fmt.Sprintf("credentials kind %q", cred.Kind),
		}
	}
}

// encodeCredential maps a canonical credential to its serialized form.
// cred must be one of the canonical value types.
func encodeCredential(cred Credential) config.Credential {
	switch c := cred.(type) {
	case Password:
		return config.Credential{
			Kind:     string(KindPassword),
			Username: c.Username,
			Password: c.Password,
		}
	case HTTPHeader:
		return config.Credential{
			Kind:        string(KindHTTPHeader),
			HeaderName:  c.Name,
			HeaderValue: c.Value,
		}
	case AWSAccessKey:
		return config.Credential{
			Kind:            string(KindAWSAccessKey),
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			SessionToken:    c.SessionToken,
		}
	case TLSKeyPair:
		return config.Credential{
			Kind:    string(KindTLSKeyPair),
			CertPEM: string(c.CertPEM),
			KeyPEM:  string(c.KeyPEM),
		}
	default:
		// Normalize guarantees a canonical value
		return config.Credential{}
	}
}
