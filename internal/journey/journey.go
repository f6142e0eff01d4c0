// Package journey assembles the Approved Premises application journey from
// the page packages: which tasks exist, which sections group them, and
// which tasks gate which. The registry is built once at first use and is
// immutable afterwards.
package journey

import (
	"sync"

	"github.com/probationforms/formflow/pkg/pages/basicinformation"
	"github.com/probationforms/formflow/pkg/pages/oasysimport"
	"github.com/probationforms/formflow/pkg/pages/prisoninformation"
	"github.com/probationforms/formflow/pkg/pages/typeofap"
	"github.com/probationforms/formflow/pkg/registry"
)

var (
	once sync.Once
	reg  *registry.Registry
)

// Sections returns the declarative journey definition.
func Sections() []registry.Section {
	return []registry.Section{
		{
			ID:    "before-you-start",
			Title: "Before you start",
			Tasks: []registry.Task{
				basicinformation.Task(),
				typeofap.Task(),
			},
		},
		{
			ID:    "risks-and-needs",
			Title: "Risks and needs",
			Tasks: []registry.Task{
				oasysimport.Task(),
				prisoninformation.Task(),
			},
		},
	}
}

// Registry returns the application journey registry.
func Registry() *registry.Registry {
	once.Do(func() {
		reg = registry.Must(Sections()...)
	})
	return reg
}
