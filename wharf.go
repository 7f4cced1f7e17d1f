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

// Package wharf validates repository transport configurations for dependency
// resolution. A Factory resolves the URL schemes of a repository declaration
// to a single registered connector, normalizes the supplied credentials and
// checks every declared authentication mechanism against both the connector
// and the credentials, producing an immutable Transport on success and a
// structured error from [wharf.land/wharf-go/errdef] on the first violation.
//
// Validation is pure: it performs no network I/O and is deterministic for a
// fixed connector registry.
package wharf

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"
	"wharf.land/wharf-go/auth"
	"wharf.land/wharf-go/connector"
	"wharf.land/wharf-go/credentials"
	"wharf.land/wharf-go/errdef"
	"wharf.land/wharf-go/internal/container/set"
	"wharf.land/wharf-go/trace"
)

// defaultConcurrency is the default concurrency limit of CreateTransports.
const defaultConcurrency = 3

// Request describes one repository declaration to validate.
type Request struct {
	// RepositoryName names the repository in error messages and trace
	// output. It is not part of the transport identity and may be empty.
	RepositoryName string

	// Schemes holds the URL schemes of the repository locations. Order and
	// duplicates are irrelevant.
	Schemes []string

	// Credentials holds the credentials configured for the repository, if
	// any.
	Credentials credentials.Credential

	// Authentication declares the authentication mechanisms to use, in
	// preference order. Duplicated kinds keep the first occurrence; nil
	// entries are ignored.
	Authentication []auth.Authentication
}

// Factory validates repository declarations against a connector registry.
type Factory struct {
	registry *connector.Registry
	cache    *transportCache
	trace    *trace.ValidationTrace
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithCache enables transport sharing: requests with equal fingerprints
// return the same Transport, validated once. Failed validations are never
// cached, so a fixed configuration is always re-evaluated.
func WithCache() FactoryOption {
	return func(f *Factory) {
		f.cache = newTransportCache()
	}
}

// WithTrace attaches validation trace hooks to every request made through
// the factory.
func WithTrace(t *trace.ValidationTrace) FactoryOption {
	return func(f *Factory) {
		f.trace = t
	}
}

// NewFactory returns a Factory validating against registry.
func NewFactory(registry *connector.Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: registry,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateTransport validates req and returns the transport serving it.
//
// Validation runs in a fixed order and stops at the first violation: scheme
// resolution, credentials normalization, then authentication compatibility.
// Authentication compatibility itself checks connector support for every
// declared kind before checking the credentials against any of them. The
// returned errors unwrap to the sentinels of
// [wharf.land/wharf-go/errdef].
func (f *Factory) CreateTransport(req Request) (*Transport, error) {
	return f.createTransport(req, f.trace)
}

// CreateFileTransport returns the transport for a local file repository.
func (f *Factory) CreateFileTransport(repositoryName string) (*Transport, error) {
	return f.CreateTransport(Request{
		RepositoryName: repositoryName,
		Schemes:        []string{connector.SchemeFile},
	})
}

// CreateTransportsOptions contains parameters for [Factory.CreateTransports].
type CreateTransportsOptions struct {
	// Concurrency limits the maximum number of concurrent validations.
	// If less than or equal to 0, a default concurrency of 3 is used.
	Concurrency int
}

// CreateTransports validates reqs concurrently and returns the transports in
// request order. The first validation failure cancels outstanding work and is
// returned as is; per-repository attribution is available through the trace
// hooks, which fire for every request that was started. Traces on ctx fire in
// addition to the factory's own.
func (f *Factory) CreateTransports(ctx context.Context, reqs []Request, opts CreateTransportsOptions) ([]*Transport, error) {
	concurrency := defaultConcurrency
	if opts.Concurrency > 0 {
		concurrency = opts.Concurrency
	}
	traces := []*trace.ValidationTrace{f.trace, trace.ContextValidationTrace(ctx)}

	transports := make([]*Transport, len(reqs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, req := range reqs {
		i, req := i, req
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			transport, err := f.createTransport(req, traces...)
			if err != nil {
				return err
			}
			transports[i] = transport
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return transports, nil
}

// createTransport validates req, firing the given trace hooks around the
// validation.
func (f *Factory) createTransport(req Request, traces ...*trace.ValidationTrace) (*Transport, error) {
	for _, t := range traces {
		if t != nil && t.ValidateStart != nil {
			t.ValidateStart(req.RepositoryName, req.Schemes)
		}
	}
	transport, err := f.validate(req)
	for _, t := range traces {
		if t != nil && t.ValidateDone != nil {
			var connectorName string
			if transport != nil {
				connectorName = transport.descriptor.Name()
			}
			t.ValidateDone(req.RepositoryName, connectorName, err)
		}
	}
	return transport, err
}

// validate runs the validation pipeline for req, consulting the transport
// cache if one is configured. The cache key is the request fingerprint, so
// scheme resolution and credentials normalization always run; only the
// authentication checks and the transport construction are shared.
func (f *Factory) validate(req Request) (*Transport, error) {
	if f.registry == nil {
		return nil, errors.New("nil connector registry")
	}
	d, err := f.registry.Resolve(req.Schemes, req.RepositoryName)
	if err != nil {
		return nil, err
	}
	cred, err := credentials.Normalize(req.Credentials)
	if err != nil {
		return nil, err
	}
	mechanisms := dedupeAuthentication(req.Authentication)
	schemes := normalizeSchemes(req.Schemes)
	fingerprint, err := computeFingerprint(schemes, cred, mechanisms)
	if err != nil {
		return nil, err
	}

	build := func() (*Transport, error) {
		if err := validateAuthentication(d, cred, mechanisms, schemes); err != nil {
			return nil, err
		}
		return &Transport{
			schemes:        schemes,
			descriptor:     d,
			credentials:    cred,
			authentication: mechanisms,
			fingerprint:    fingerprint,
		}, nil
	}
	if f.cache == nil {
		return build()
	}
	return f.cache.get(fingerprint, build)
}

// validateAuthentication checks the declared authentication mechanisms
// against the selected connector and the supplied credentials. Connector
// support is checked for every declared kind before the credentials are
// checked against any of them; within each pass the declared order decides
// which violation is reported.
func validateAuthentication(d connector.Descriptor, cred credentials.Normalized, mechanisms []auth.Authentication, schemes []string) error {
	if len(mechanisms) == 0 {
		return nil
	}
	if cred.Empty() {
		return &errdef.MissingCredentialsError{}
	}
	supported := set.New(d.SupportedAuthentication()...)
	for _, mechanism := range mechanisms {
		if !supported.Contains(mechanism.Kind()) {
			return &errdef.UnsupportedAuthenticationError{
				AuthenticationKind: string(mechanism.Kind()),
				Schemes:            schemes,
			}
		}
	}
	for _, mechanism := range mechanisms {
		if !auth.Accepts(mechanism, cred.Kind()) {
			return &errdef.IncompatibleCredentialsError{
				CredentialsKind:    string(cred.Kind()),
				AuthenticationKind: string(mechanism.Kind()),
			}
		}
	}
	return nil
}

// dedupeAuthentication drops nil mechanisms and duplicated kinds, keeping
// the first occurrence of each kind in declared order.
func dedupeAuthentication(mechanisms []auth.Authentication) []auth.Authentication {
	seen := set.New[auth.Kind]()
	var deduped []auth.Authentication
	for _, mechanism := range mechanisms {
		if mechanism == nil || seen.Contains(mechanism.Kind()) {
			continue
		}
		seen.Add(mechanism.Kind())
		deduped = append(deduped, mechanism)
	}
	return deduped
}

// normalizeSchemes returns schemes deduplicated and sorted.
func normalizeSchemes(schemes []string) []string {
	unique := set.New(schemes...)
	ordered := make([]string, 0, len(unique))
	for scheme := range unique {
		ordered = append(ordered, scheme)
	}
	sort.Strings(ordered)
	return ordered
}
