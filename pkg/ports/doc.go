// Package ports defines the collaborator contracts the formflow engine
// consumes: the artifact persistence capability and the read-only data
// services used by page initialization. Adapters implement these interfaces;
// the engine core never imports an adapter.
package ports
