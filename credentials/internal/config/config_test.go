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

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_notExistingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "credentials.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Path(); got != configPath {
		t.Errorf("Config.Path() = %v, want %v", got, configPath)
	}
	got, err := cfg.GetCredential("repo.example.com")
	if err != nil {
		t.Fatalf("Config.GetCredential() error = %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("Config.GetCredential() = %v, want empty", got)
	}
}

func TestLoad_emptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(configPath, []byte("  \n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := cfg.GetCredential("repo.example.com")
	if err != nil {
		t.Fatalf("Config.GetCredential() error = %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("Config.GetCredential() = %v, want empty", got)
	}
}

func TestLoad_invalidFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(configPath, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(configPath); !errors.Is(err, ErrInvalidConfigFormat) {
		t.Errorf("Load() error = %v, want %v", err, ErrInvalidConfigFormat)
	}
}

func TestConfig_GetCredential_hostnameMatch(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "credentials.json")
	content := map[string]any{
		"repositories": map[string]any{
			"https://repo.example.com/releases": map[string]any{
				"kind":     "password",
				"username": "username",
				"password": "password",
			},
		},
	}
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, jsonBytes, 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// exact key
	got, err := cfg.GetCredential("https://repo.example.com/releases")
	if err != nil {
		t.Fatalf("Config.GetCredential() error = %v", err)
	}
	want := Credential{Kind: "password", Username: "username", Password: "password"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Config.GetCredential() = %v, want %v", got, want)
	}

	// hostname fallback
	got, err = cfg.GetCredential("repo.example.com")
	if err != nil {
		t.Fatalf("Config.GetCredential() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Config.GetCredential() = %v, want %v", got, want)
	}
}

func TestConfig_PutCredential_preservesUnknownFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "credentials.json")
	content := map[string]any{
		"someConfigField": 123,
		"repositories": map[string]any{
			"repo.example.com": map[string]any{
				"kind":     "password",
				"username": "old",
			},
		},
	}
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, jsonBytes, 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	newCred := Credential{Kind: "password", Username: "new", Password: "secret"}
	if err := cfg.PutCredential("repo.example.com", newCred); err != nil {
		t.Fatalf("Config.PutCredential() error = %v", err)
	}

	savedBytes, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	var saved map[string]json.RawMessage
	if err := json.Unmarshal(savedBytes, &saved); err != nil {
		t.Fatalf("failed to unmarshal saved config: %v", err)
	}
	if _, ok := saved["someConfigField"]; !ok {
		t.Error("unknown field dropped on save")
	}

	reloaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := reloaded.GetCredential("repo.example.com")
	if err != nil {
		t.Fatalf("Config.GetCredential() error = %v", err)
	}
	if !reflect.DeepEqual(got, newCred) {
		t.Errorf("Config.GetCredential() = %v, want %v", got, newCred)
	}
}

func TestConfig_DeleteCredential(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "credentials.json")
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cred := Credential{Kind: "password", Username: "username", Password: "password"}
	if err := cfg.PutCredential("repo.example.com", cred); err != nil {
		t.Fatalf("Config.PutCredential() error = %v", err)
	}
	if err := cfg.DeleteCredential("repo.example.com"); err != nil {
		t.Fatalf("Config.DeleteCredential() error = %v", err)
	}
	got, err := cfg.GetCredential("repo.example.com")
	if err != nil {
		t.Fatalf("Config.GetCredential() error = %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("Config.GetCredential() = %v, want empty", got)
	}

	// deleting an absent record does not touch the file
	if err := cfg.DeleteCredential("unknown.example.com"); err != nil {
		t.Errorf("Config.DeleteCredential() error = %v", err)
	}
}

func TestToHostname(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{
			name: "plain hostname",
			addr: "repo.example.com",
			want: "repo.example.com",
		},
		{
			name: "https URL with path",
			addr: "https://repo.example.com/releases",
			want: "repo.example.com",
		},
		{
			name: "http URL with trailing slash",
			addr: "http://repo.example.com/",
			want: "repo.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHostname(tt.addr); got != tt.want {
				t.Errorf("ToHostname() = %v, want %v", got, tt.want)
			}
		})
	}
}
