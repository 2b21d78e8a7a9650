// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubComp struct {
	stop     chan struct{}
	runErr   error
	shutErr  error
	shutdown atomic.Int32
}

func newStub() *stubComp { return &stubComp{stop: make(chan struct{})} }

func (s *stubComp) Run() error {
	if s.runErr != nil {
		return s.runErr
	}
	<-s.stop
	return nil
}

func (s *stubComp) Shutdown(context.Context) error {
	if s.shutdown.Add(1) == 1 {
		close(s.stop)
	}
	return s.shutErr
}

func TestRunContextCancel(t *testing.T) {
	a, b := newStub(), newStub()
	app := NewWith(a, b, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	if a.shutdown.Load() != 1 || b.shutdown.Load() != 1 {
		t.Fatalf("every component must be shut down once")
	}
}

func TestRunContextComponentError(t *testing.T) {
	boom := errors.New("boom")
	bad := newStub()
	bad.runErr = boom
	closeErr := errors.New("close")
	ok := newStub()
	ok.shutErr = closeErr

	app := NewWith(ok, bad)
	app.SetShutdownTimeout(time.Second)
	err := app.RunContext(context.Background())
	if !errors.Is(err, boom) || !errors.Is(err, closeErr) {
		t.Fatalf("expected joined errors, got %v", err)
	}
}

func TestRunContextEmpty(t *testing.T) {
	if err := New().RunContext(context.Background()); err != nil {
		t.Fatalf("empty app: %v", err)
	}
}
