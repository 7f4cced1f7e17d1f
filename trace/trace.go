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

// Package trace provides hooks for observing repository transport
// validation. Traces are carried on the context; stacking a trace on a
// context that already holds one chains the hooks.
package trace

import "context"

// ValidationTrace is a set of hooks to run at the stages of validating a
// repository transport.
type ValidationTrace struct {
	// ValidateStart is called before validation of a repository begins.
	// schemes holds the requested URL schemes as declared.
	ValidateStart func(repositoryName string, schemes []string)

	// ValidateDone is called when validation of a repository finishes.
	// connectorName is empty if no connector was selected.
	ValidateDone func(repositoryName string, connectorName string, err error)
}

// validationTraceContextKey is a value for use with context.WithValue.
type validationTraceContextKey struct{}

// ContextValidationTrace returns the ValidationTrace associated with the
// context. If none, it returns nil.
func ContextValidationTrace(ctx context.Context) *ValidationTrace {
	trace, _ := ctx.Value(validationTraceContextKey{}).(*ValidationTrace)
	return trace
}

// WithValidationTrace takes a trace and associates it with the context. If a
// ValidationTrace is already associated with the context, the traces are
// composed so that both sets of hooks fire.
func WithValidationTrace(ctx context.Context, trace *ValidationTrace) context.Context {
	if trace == nil {
		return ctx
	}
	if oldTrace := ContextValidationTrace(ctx); oldTrace != nil {
		trace.compose(oldTrace)
	}
	return context.WithValue(ctx, validationTraceContextKey{}, trace)
}

// compose takes an oldTrace and runs its hooks after the hooks of trace.
func (trace *ValidationTrace) compose(oldTrace *ValidationTrace) {
	validateStart := trace.ValidateStart
	trace.ValidateStart = func(repositoryName string, schemes []string) {
		if validateStart != nil {
			validateStart(repositoryName, schemes)
		}
		if oldTrace.ValidateStart != nil {
			oldTrace.ValidateStart(repositoryName, schemes)
		}
	}
	validateDone := trace.ValidateDone
	trace.ValidateDone = func(repositoryName string, connectorName string, err error) {
		if validateDone != nil {
			validateDone(repositoryName, connectorName, err)
		}
		if oldTrace.ValidateDone != nil {
			oldTrace.ValidateDone(repositoryName, connectorName, err)
		}
	}
}
