// Package middleware provides composable wrappers around an artifact store.
// Probation applications carry sensitive offender data; these wrappers keep
// the engine and adapters oblivious to how it is protected at rest.
package middleware

import "github.com/probationforms/formflow/pkg/ports"

// Middleware wraps a store to add behavior.
type Middleware func(ports.ManagedArtifactStore) ports.ManagedArtifactStore

// Chain applies middlewares so the first listed is the outermost.
func Chain(store ports.ManagedArtifactStore, middlewares ...Middleware) ports.ManagedArtifactStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
