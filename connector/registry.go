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

package connector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"wharf.land/wharf-go/errdef"
	"wharf.land/wharf-go/internal/container/set"
)

// localIndex marks the built-in local file connector in candidate lists.
const localIndex = -1

// Registry holds the connectors available for transport creation. A Registry
// is immutable once constructed and safe for concurrent use.
type Registry struct {
	descriptors []Descriptor
	schemes     set.Set[string]
	allSchemes  []string
}

// NewRegistry builds a Registry serving the given connectors in addition to
// the built-in [LocalFile] connector. Registration violations do not abort at
// the first offence; they are aggregated so that a misconfigured build
// reports every problem at once.
//
// Connectors may advertise overlapping schemes. A request spanning two
// connectors is rejected at resolution time, not at registration.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		schemes: set.New[string](),
	}
	var errs error
	for i, d := range descriptors {
		if d == nil {
			errs = multierror.Append(errs, fmt.Errorf("connector %d: descriptor is nil", i))
			continue
		}
		schemes := d.Schemes()
		if len(schemes) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("connector '%s': at least one URL scheme is required", d.Name()))
			continue
		}
		for _, scheme := range schemes {
			switch scheme {
			case "":
				errs = multierror.Append(errs, fmt.Errorf("connector '%s': empty URL scheme", d.Name()))
			case SchemeFile:
				errs = multierror.Append(errs, fmt.Errorf("connector '%s': scheme '%s' is reserved for local repositories", d.Name(), SchemeFile))
			default:
				r.schemes.Add(scheme)
			}
		}
		r.descriptors = append(r.descriptors, d)
	}
	if errs != nil {
		return nil, errs
	}
	r.allSchemes = make([]string, 0, len(r.schemes)+1)
	r.allSchemes = append(r.allSchemes, SchemeFile)
	for scheme := range r.schemes {
		r.allSchemes = append(r.allSchemes, scheme)
	}
	sort.Strings(r.allSchemes)
	return r, nil
}

// Connectors returns the registered connectors in registration order,
// excluding the built-in [LocalFile] connector.
func (r *Registry) Connectors() []Descriptor {
	descriptors := make([]Descriptor, len(r.descriptors))
	copy(descriptors, r.descriptors)
	return descriptors
}

// AllSchemes returns every URL scheme the registry can serve, including the
// built-in "file" scheme, in lexical order.
func (r *Registry) AllSchemes() []string {
	schemes := make([]string, len(r.allSchemes))
	copy(schemes, r.allSchemes)
	return schemes
}

// Resolve selects the single connector able to serve every requested scheme.
// repositoryName appears in error messages only and may be empty.
//
// Schemes unknown to the registry are reported before scheme mixing, one at
// a time in lexical order, so the reported offender does not depend on
// declaration order.
func (r *Registry) Resolve(schemes []string, repositoryName string) (Descriptor, error) {
	if len(schemes) == 0 {
		if repositoryName != "" {
			return nil, fmt.Errorf("repository '%s': at least one URL scheme is required", repositoryName)
		}
		return nil, errors.New("at least one URL scheme is required")
	}

	requested := set.New(schemes...)
	ordered := make([]string, 0, len(requested))
	for scheme := range requested {
		ordered = append(ordered, scheme)
	}
	sort.Strings(ordered)

	for _, scheme := range ordered {
		if scheme != SchemeFile && !r.schemes.Contains(scheme) {
			return nil, &errdef.UnsupportedSchemeError{
				RepositoryName: repositoryName,
				Scheme:         scheme,
				ValidSchemes:   r.AllSchemes(),
			}
		}
	}

	var candidates []int
	for i, d := range r.descriptors {
		if set.New(d.Schemes()...).Intersects(ordered...) {
			candidates = append(candidates, i)
		}
	}
	if requested.Contains(SchemeFile) {
		candidates = append(candidates, localIndex)
	}
	if len(candidates) > 1 {
		return nil, &errdef.MixedSchemeError{
			RepositoryName: repositoryName,
			Schemes:        ordered,
		}
	}
	if len(candidates) == 0 {
		// Unreachable unless a descriptor's advertised schemes drifted from
		// the registration snapshot.
		return nil, &errdef.UnsupportedSchemeError{
			RepositoryName: repositoryName,
			Scheme:         ordered[0],
			ValidSchemes:   r.AllSchemes(),
		}
	}
	d := r.descriptor(candidates[0])

	// The selected connector must cover the requested set even if its
	// advertised schemes drifted from the registration snapshot.
	supported := set.New(d.Schemes()...)
	for _, scheme := range ordered {
		if !supported.Contains(scheme) {
			return nil, &errdef.UnsupportedSchemeError{
				RepositoryName: repositoryName,
				Scheme:         scheme,
				ValidSchemes:   r.AllSchemes(),
			}
		}
	}
	return d, nil
}

// descriptor maps a candidate index back to its descriptor.
func (r *Registry) descriptor(index int) Descriptor {
	if index == localIndex {
		return LocalFile
	}
	return r.descriptors[index]
}
