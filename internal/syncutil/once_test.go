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

package syncutil

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestOnce_Do(t *testing.T) {
	var once Once[string]
	var calls atomic.Int64

	got, err := once.Do(func() (string, error) {
		calls.Add(1)
		return "result", nil
	})
	if err != nil {
		t.Fatalf("Once.Do() error = %v, want nil", err)
	}
	if want := "result"; got != want {
		t.Errorf("Once.Do() = %v, want %v", got, want)
	}

	// subsequent calls return the cached result without invoking f
	got, err = once.Do(func() (string, error) {
		calls.Add(1)
		return "other", nil
	})
	if err != nil {
		t.Fatalf("Once.Do() error = %v, want nil", err)
	}
	if want := "result"; got != want {
		t.Errorf("Once.Do() = %v, want %v", got, want)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %v, want %v", got, 1)
	}
}

func TestOnce_Do_retryOnError(t *testing.T) {
	var once Once[string]
	errTemp := errors.New("temporary failure")
	var calls atomic.Int64

	if _, err := once.Do(func() (string, error) {
		calls.Add(1)
		return "", errTemp
	}); !errors.Is(err, errTemp) {
		t.Fatalf("Once.Do() error = %v, want %v", err, errTemp)
	}

	// a failed attempt does not count; the next caller retries
	got, err := once.Do(func() (string, error) {
		calls.Add(1)
		return "result", nil
	})
	if err != nil {
		t.Fatalf("Once.Do() error = %v, want nil", err)
	}
	if want := "result"; got != want {
		t.Errorf("Once.Do() = %v, want %v", got, want)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %v, want %v", got, 2)
	}
}

func TestOnce_Do_concurrent(t *testing.T) {
	var once Once[int]
	var calls atomic.Int64

	ctx := context.Background()
	concurrency := 64
	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		eg.Go(func() error {
			got, err := once.Do(func() (int, error) {
				calls.Add(1)
				return 42, nil
			})
			if err != nil {
				return err
			}
			if got != 42 {
				return errors.New("unexpected result")
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("Once.Do() error = %v, want nil", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %v, want %v", got, 1)
	}
}
