package secrets

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeAccessor serves payloads from a map and records calls.
type fakeAccessor struct {
	mu       sync.Mutex
	payloads map[Name][]byte
	errs     map[Name]error
	calls    []Ref
}

func (f *fakeAccessor) Access(ctx context.Context, ref Ref) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ref)
	if err := f.errs[ref.Secret]; err != nil {
		return nil, err
	}
	if p, ok := f.payloads[ref.Secret]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (f *fakeAccessor) set(n Name, v string) {
	f.mu.Lock()
	f.payloads[n] = []byte(v)
	f.mu.Unlock()
}

func newFake() *fakeAccessor {
	return &fakeAccessor{payloads: map[Name][]byte{}, errs: map[Name]error{}}
}

func quiet() Options { return Options{Logger: zap.NewNop().Sugar()} }

func TestLoadSuccess(t *testing.T) {
	f := newFake()
	f.set(DBPassword, "s3cr3t-pass")
	f.set(APIKey, "key-123456")

	c := Load(context.Background(), f, "acme", Required, quiet())

	if v, ok := c.Value(DBPassword); !ok || v != "s3cr3t-pass" {
		t.Fatalf("db-password = %q, %v", v, ok)
	}
	if c.LoadedCount() != 2 {
		t.Fatalf("LoadedCount = %d, want 2", c.LoadedCount())
	}
	if len(f.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(f.calls))
	}
	if got := f.calls[0].String(); got != "projects/acme/secrets/db-password/versions/latest" {
		t.Errorf("first ref = %q", got)
	}
	if f.calls[1].Secret != APIKey {
		t.Errorf("load order broken: %v", f.calls)
	}
	if c.LoadedAt().IsZero() {
		t.Error("LoadedAt not set")
	}
}

func TestLoadPreconditions(t *testing.T) {
	t.Run("nil_accessor", func(t *testing.T) {
		c := Load(context.Background(), nil, "acme", Required, quiet())
		for _, n := range Required {
			if c.Loaded(n) {
				t.Errorf("%s loaded without a client", n)
			}
			if !errors.Is(c.Failure(n), ErrClientUnavailable) {
				t.Errorf("%s failure = %v, want ErrClientUnavailable", n, c.Failure(n))
			}
		}
	})

	t.Run("missing_project", func(t *testing.T) {
		f := newFake()
		f.set(DBPassword, "x")
		c := Load(context.Background(), f, "", Required, quiet())
		if !errors.Is(c.Failure(DBPassword), ErrProjectIDMissing) {
			t.Errorf("failure = %v, want ErrProjectIDMissing", c.Failure(DBPassword))
		}
		if len(f.calls) != 0 {
			t.Errorf("accessor called %d times without a project id", len(f.calls))
		}
	})
}

func TestLoadIsolatesFailures(t *testing.T) {
	f := newFake()
	f.errs[DBPassword] = errors.New("permission denied")
	f.set(APIKey, "abcdef")

	c := Load(context.Background(), f, "acme", Required, quiet())

	if c.Loaded(DBPassword) {
		t.Fatal("db-password should be absent")
	}
	var ae *AccessError
	if !errors.As(c.Failure(DBPassword), &ae) {
		t.Fatalf("failure = %T, want *AccessError", c.Failure(DBPassword))
	}
	if ae.Ref.Secret != DBPassword || !strings.Contains(ae.Error(), "permission denied") {
		t.Errorf("AccessError = %v", ae)
	}
	if !c.Loaded(APIKey) {
		t.Fatal("api-key should load despite db-password failure")
	}
	if c.Failure(APIKey) != nil {
		t.Errorf("api-key failure = %v, want nil", c.Failure(APIKey))
	}
}

func TestLoadRejectsInvalidUTF8(t *testing.T) {
	f := newFake()
	f.payloads[DBPassword] = []byte{0xff, 0xfe, 0xfd}

	c := Load(context.Background(), f, "acme", []Name{DBPassword}, quiet())
	if !errors.Is(c.Failure(DBPassword), ErrInvalidPayload) {
		t.Fatalf("failure = %v, want ErrInvalidPayload", c.Failure(DBPassword))
	}
}

func TestLoadAppliesTimeout(t *testing.T) {
	blocking := accessorFunc(func(ctx context.Context, _ Ref) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	opts := quiet()
	opts.Timeout = 10 * time.Millisecond

	c := Load(context.Background(), blocking, "acme", []Name{APIKey}, opts)
	if !errors.Is(c.Failure(APIKey), context.DeadlineExceeded) {
		t.Fatalf("failure = %v, want deadline exceeded", c.Failure(APIKey))
	}
}

func TestCacheIsWriteOnce(t *testing.T) {
	f := newFake()
	f.set(DBPassword, "first")

	c := Load(context.Background(), f, "acme", Required, quiet())

	// The store changes after startup; the cache must not.
	f.set(DBPassword, "second")
	f.set(APIKey, "now-present")

	if v, _ := c.Value(DBPassword); v != "first" {
		t.Errorf("db-password = %q, want first", v)
	}
	if c.Loaded(APIKey) {
		t.Error("api-key appeared after startup")
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	f := newFake()
	f.set(DBPassword, "pw")

	a := Load(context.Background(), f, "acme", Required, quiet())
	b := Load(context.Background(), f, "acme", Required, quiet())

	for _, n := range Required {
		if !sameStatus(a.Status(n), b.Status(n)) {
			t.Errorf("%s: %+v vs %+v", n, a.Status(n), b.Status(n))
		}
		av, aok := a.Value(n)
		bv, bok := b.Value(n)
		if av != bv || aok != bok {
			t.Errorf("%s: values differ", n)
		}
	}
}

type accessorFunc func(ctx context.Context, ref Ref) ([]byte, error)

func (f accessorFunc) Access(ctx context.Context, ref Ref) ([]byte, error) { return f(ctx, ref) }

func sameStatus(a, b Status) bool {
	if a.Loaded != b.Loaded || a.Length != b.Length {
		return false
	}
	if (a.Preview == nil) != (b.Preview == nil) {
		return false
	}
	return a.Preview == nil || *a.Preview == *b.Preview
}

func TestLoadLogsEachFailureOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	acc := newFake()
	acc.set(APIKey, "k-123")

	Load(context.Background(), acc, "proj", Required, Options{Logger: zap.New(core).Sugar()})

	var failures []observer.LoggedEntry
	for _, e := range logs.All() {
		if e.Level >= zapcore.WarnLevel {
			failures = append(failures, e)
		}
	}
	if len(failures) != 1 {
		t.Fatalf("got %d warn/error lines, want 1: %v", len(failures), failures)
	}

	f := failures[0].ContextMap()
	if f["secret"] != string(DBPassword) && f["secret"] != DBPassword {
		t.Errorf("secret = %v", f["secret"])
	}
	if f["reason"] != "not_found" {
		t.Errorf("reason = %v, want not_found", f["reason"])
	}
	if _, ok := f["err"]; !ok {
		t.Error("failure line has no err field")
	}
}
