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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
	"wharf.land/wharf-go"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/trace"
)

var (
	credentialsFile string
	failFast        bool
	concurrency     int
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate the repositories declared in a manifest",
	Long: `Validate the repositories declared in a manifest file.

The manifest is JSON or YAML of the form:

  repositories:
    - name: central
      schemes: [https]
      credentials:
        kind: password
        username: deploy
        password: hunter2
      authentication: [basic]

A repository without inline credentials falls back to the credentials file
given with --credentials-file, keyed by repository name. Every repository is
validated and reported unless --fail-fast is set, in which case validation
runs concurrently and stops at the first failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&credentialsFile, "credentials-file", "", "JSON credentials file consulted for repositories without inline credentials")
	validateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first invalid repository")
	validateCmd.Flags().IntVar(&concurrency, "concurrency", 0, "concurrency limit for --fail-fast validation")
	rootCmd.AddCommand(validateCmd)
}

// manifest is the repository declaration file accepted by the validate
// command.
type manifest struct {
	Repositories []repositoryEntry `json:"repositories"`
}

type repositoryEntry struct {
	// Name names the repository in verdicts and error messages.
	Name string `json:"name"`

	// Schemes holds the URL schemes of the repository locations.
	Schemes []string `json:"schemes"`

	// Credentials holds inline credentials, if any.
	Credentials *manifestCredential `json:"credentials,omitempty"`

	// Authentication lists authentication protocol names, e.g. "basic".
	Authentication []string `json:"authentication,omitempty"`
}

// manifestCredential mirrors the serialized credential form of the
// credentials file store: a kind discriminator plus the field group matching
// it.
type manifestCredential struct {
	Kind            string `json:"kind"`
	Username        string `json:"username,omitempty"`
	Password        string `json:"password,omitempty"`
	HeaderName      string `json:"headerName,omitempty"`
	HeaderValue     string `json:"headerValue,omitempty"`
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
	SessionToken    string `json:"sessionToken,omitempty"`
	CertPEM         string `json:"certPem,omitempty"`
	KeyPEM          string `json:"keyPem,omitempty"`
}

// credential maps the manifest form to its canonical credential value.
func (c *manifestCredential) credential() (credentials.Credential, error) {
	switch credentials.Kind(c.Kind) {
	case credentials.KindPassword:
		return credentials.Password{
			Username: c.Username,
			Password: c.Password,
		}, nil
	case credentials.KindHTTPHeader:
		return credentials.HTTPHeader{
			Name:  c.HeaderName,
			Value: c.HeaderValue,
		}, nil
	case credentials.KindAWSAccessKey:
		return credentials.AWSAccessKey{
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			SessionToken:    c.SessionToken,
		}, nil
	case credentials.KindTLSKeyPair:
		return credentials.TLSKeyPair{
			CertPEM: []byte(c.CertPEM),
			KeyPEM:  []byte(c.KeyPEM),
		}, nil
	default:
		return nil, fmt.Errorf("unknown credentials kind %q", c.Kind)
	}
}

// loadManifest reads and parses a manifest file. YAML input is converted to
// JSON before decoding, so both formats share one schema.
func loadManifest(path string) (*manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(m.Repositories) == 0 {
		return nil, fmt.Errorf("manifest %s declares no repositories", path)
	}
	return &m, nil
}

// buildRequest assembles the validation request for a repository entry,
// resolving credentials from the fallback store when none are declared
// inline.
func buildRequest(ctx context.Context, entry repositoryEntry, store credentials.Store) (wharf.Request, error) {
	req := wharf.Request{
		RepositoryName: entry.Name,
		Schemes:        entry.Schemes,
	}
	if entry.Credentials != nil {
		cred, err := entry.Credentials.credential()
		if err != nil {
			return wharf.Request{}, fmt.Errorf("repository '%s': %w", entry.Name, err)
		}
		req.Credentials = cred
	} else if store != nil {
		cred, err := store.Get(ctx, entry.Name)
		if err != nil {
			return wharf.Request{}, fmt.Errorf("repository '%s': %w", entry.Name, err)
		}
		req.Credentials = cred
	}
	for _, name := range entry.Authentication {
		mechanism, err := auth.Parse(name)
		if err != nil {
			return wharf.Request{}, fmt.Errorf("repository '%s': %w", entry.Name, err)
		}
		req.Authentication = append(req.Authentication, mechanism)
	}
	return req, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := loadManifest(args[0])
	if err != nil {
		return err
	}

	var store credentials.Store
	if credentialsFile != "" {
		store, err = credentials.NewFileStore(credentialsFile)
		if err != nil {
			return err
		}
	}

	registry, err := defaultRegistry()
	if err != nil {
		return err
	}
	factory := wharf.NewFactory(registry,
		wharf.WithCache(),
		wharf.WithTrace(trace.Logging(newLogger())),
	)

	reqs := make([]wharf.Request, 0, len(m.Repositories))
	for _, entry := range m.Repositories {
		req, err := buildRequest(ctx, entry, store)
		if err != nil {
			return err
		}
		reqs = append(reqs, req)
	}

	out := cmd.OutOrStdout()
	if failFast {
		transports, err := factory.CreateTransports(ctx, reqs, wharf.CreateTransportsOptions{
			Concurrency: concurrency,
		})
		if err != nil {
			return err
		}
		for i, transport := range transports {
			fmt.Fprintf(out, "%s: OK (connector '%s')\n", reqs[i].RepositoryName, transport.Connector().Name())
		}
		return nil
	}

	var failures int
	for _, req := range reqs {
		transport, err := factory.CreateTransport(req)
		if err != nil {
			failures++
			fmt.Fprintf(out, "%s: %v\n", req.RepositoryName, err)
			continue
		}
		fmt.Fprintf(out, "%s: OK (connector '%s')\n", req.RepositoryName, transport.Connector().Name())
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d repositories failed validation", failures, len(reqs))
	}
	return nil
}
