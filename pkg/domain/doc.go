// Package domain contains the core types of the formflow engine: the form
// Artifact with its nested answer store, the Page contract every wizard
// screen implements, and the error taxonomy shared by the registry, the
// completion engine and the page lifecycle service.
//
// Everything in this package is plain data and pure functions. I/O lives
// behind the interfaces in pkg/ports and in the adapters.
package domain
