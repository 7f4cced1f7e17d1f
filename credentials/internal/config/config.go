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

// Package config handles the JSON credentials file used by the file-backed
// credentials store.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"wharf.land/wharf-go/internal/ioutil"
)

// configFieldRepositories is the "repositories" field in the credentials
// file.
const configFieldRepositories = "repositories"

// ErrInvalidConfigFormat is returned when the credentials file format is
// invalid.
var ErrInvalidConfigFormat = errors.New("invalid config format")

// Credential is the serialized form of a repository credential. Exactly one
// group of fields is expected to be populated, matching Kind.
type Credential struct {
	// Kind is the kind of the credential, e.g. "password".
	Kind string `json:"kind,omitempty"`

	// Username and Password hold "password" credentials.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// HeaderName and HeaderValue hold "http-header" credentials.
	HeaderName  string `json:"headerName,omitempty"`
	HeaderValue string `json:"headerValue,omitempty"`

	// AccessKeyID, SecretAccessKey and SessionToken hold "aws-access-key"
	// credentials.
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
	SessionToken    string `json:"sessionToken,omitempty"`

	// CertPEM and KeyPEM hold "tls-key-pair" credentials.
	CertPEM string `json:"certPem,omitempty"`
	KeyPEM  string `json:"keyPem,omitempty"`
}

// IsEmpty returns whether the credential is empty.
func (c Credential) IsEmpty() bool {
	return c == Credential{}
}

// Config represents a credentials file. Unknown fields of the file are
// preserved across saves.
type Config struct {
	// path is the path to the credentials file.
	path string
	// rwLock is a read-write-lock for the file store.
	rwLock sync.RWMutex
	// content is the content of the credentials file.
	content map[string]json.RawMessage
	// repositoriesCache is a cache of the repositories field of the file.
	repositoriesCache map[string]json.RawMessage
}

// Load loads Config from the given config path. A missing or empty file is
// not an error; it loads as an empty configuration.
func Load(configPath string) (*Config, error) {
	cfg := &Config{path: configPath}
	configFile, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// init content and cache if the file does not exist
			cfg.content = make(map[string]json.RawMessage)
			cfg.repositoriesCache = make(map[string]json.RawMessage)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}
	defer configFile.Close()

	// decode config content if the config file exists
	if err := json.NewDecoder(configFile).Decode(&cfg.content); err != nil {
		if errors.Is(err, io.EOF) {
			// empty or whitespace only file
			cfg.content = make(map[string]json.RawMessage)
			cfg.repositoriesCache = make(map[string]json.RawMessage)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to decode config file %s: %w: %v", configPath, ErrInvalidConfigFormat, err)
	}

	if repositoriesBytes, ok := cfg.content[configFieldRepositories]; ok {
		if err := json.Unmarshal(repositoriesBytes, &cfg.repositoriesCache); err != nil {
			return nil, fmt.Errorf("failed to unmarshal repositories field: %w: %v", ErrInvalidConfigFormat, err)
		}
	}
	if cfg.repositoriesCache == nil {
		cfg.repositoriesCache = make(map[string]json.RawMessage)
	}

	return cfg, nil
}

// GetCredential returns the credential recorded for repository. An absent
// entry returns an empty Credential with no error.
func (cfg *Config) GetCredential(repository string) (Credential, error) {
	cfg.rwLock.RLock()
	defer cfg.rwLock.RUnlock()

	credBytes, ok := cfg.repositoriesCache[repository]
	if !ok {
		// NOTE: the key for a repository may have been recorded with a
		// scheme prefix, e.g. "repo.example.com" can be stored as
		// "https://repo.example.com/releases".
		var matched bool
		for key, cred := range cfg.repositoriesCache {
			if ToHostname(key) == repository {
				matched = true
				credBytes = cred
				break
			}
		}
		if !matched {
			return Credential{}, nil
		}
	}
	var cred Credential
	if err := json.Unmarshal(credBytes, &cred); err != nil {
		return Credential{}, fmt.Errorf("failed to unmarshal credential: %w: %v", ErrInvalidConfigFormat, err)
	}
	return cred, nil
}

// PutCredential records cred for repository and saves the file.
func (cfg *Config) PutCredential(repository string, cred Credential) error {
	cfg.rwLock.Lock()
	defer cfg.rwLock.Unlock()

	credBytes, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}
	cfg.repositoriesCache[repository] = credBytes
	return cfg.saveFile()
}

// DeleteCredential deletes the credential recorded for repository, if any.
func (cfg *Config) DeleteCredential(repository string) error {
	cfg.rwLock.Lock()
	defer cfg.rwLock.Unlock()

	if _, ok := cfg.repositoriesCache[repository]; !ok {
		// no ops
		return nil
	}
	delete(cfg.repositoriesCache, repository)
	return cfg.saveFile()
}

// Path returns the path to the credentials file.
func (cfg *Config) Path() string {
	return cfg.path
}

// saveFile saves Config into the file.
func (cfg *Config) saveFile() (returnErr error) {
	repositoriesBytes, err := json.Marshal(cfg.repositoriesCache)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	cfg.content[configFieldRepositories] = repositoriesBytes
	jsonBytes, err := json.MarshalIndent(cfg.content, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// write the content to an ingest file for atomicity
	configDir := filepath.Dir(cfg.path)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to make directory %s: %w", configDir, err)
	}
	ingest, err := ioutil.Ingest(configDir, bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	defer func() {
		if returnErr != nil {
			// clean up the ingest file in case of error
			os.Remove(ingest)
		}
	}()

	// overwrite the config file
	if err := os.Rename(ingest, cfg.path); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// ToHostname normalizes a repository address to just its hostname, removing
// the scheme and the path parts. It is used to match keys in the
// repositories map, which may be stored either as hostnames or as full
// repository URLs.
func ToHostname(addr string) string {
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr, _, _ = strings.Cut(addr, "/")
	return addr
}
