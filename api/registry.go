package api

import (
	"sync"

	"github.com/coreos/go-semver/semver"
	"go.uber.org/zap"

	"github.com/wippyai/coro-engine/errors"
)

var (
	regMu    sync.RWMutex
	registry = make(map[string]*Table)
)

// Publish exports a table under a well-known name, replacing any
// previous table of that name. Typically called once at startup:
//
//	api.Publish(api.APIName, api.Export(sched))
func Publish(name string, t *Table) {
	regMu.Lock()
	registry[name] = t
	regMu.Unlock()

	Logger().Debug("API table published",
		zap.String("name", name),
		zap.String("version", t.Version.String()))
}

// Unpublish removes a table from the registry.
func Unpublish(name string) {
	regMu.Lock()
	delete(registry, name)
	regMu.Unlock()
}

// Acquire resolves the table published under name and performs the
// version handshake on behalf of consumer. The handshake fails when
// no table is published or when the exported major version differs
// from the one the consumer was built against; the consumer must not
// proceed in either case. Unlike everything else in this engine, a
// mismatch is a hard stop, not a recoverable condition.
func Acquire(name, consumer string, want semver.Version) (*Table, error) {
	regMu.RLock()
	t, ok := registry[name]
	regMu.RUnlock()

	if !ok {
		return nil, errors.TableNotFound(consumer, name)
	}
	if t.Version.Major != want.Major {
		return nil, errors.VersionMismatch(consumer, t.Version.String(), want.String())
	}

	Logger().Debug("API handshake succeeded",
		zap.String("name", name),
		zap.String("consumer", consumer),
		zap.String("version", t.Version.String()))
	return t, nil
}

// MustAcquire is the abort-style handshake: it panics on failure.
// Dependent modules that cannot run at all without the engine resolve
// their table through it at load time.
func MustAcquire(name, consumer string, want semver.Version) *Table {
	t, err := Acquire(name, consumer, want)
	if err != nil {
		panic(err)
	}
	return t
}
