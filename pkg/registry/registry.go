// Package registry holds the static, declarative registration of pages into
// tasks and tasks into sections. A registry is built once at process start
// from value literals and is immutable afterwards; it is just data plus a
// reverse lookup from (task, page) to the page factory.
package registry

import (
	"fmt"

	"github.com/probationforms/formflow/pkg/domain"
)

// PageFactory constructs a page instance from the best-available candidate
// body and the full artifact. Factories are pure and synchronous: no I/O.
// Pages needing reference data additionally implement ports.Initializer.
type PageFactory func(body map[string]any, artifact *domain.Artifact, pctx domain.PageContext) (domain.Page, error)

// PageDef registers one page slug within a task.
type PageDef struct {
	ID  string
	New PageFactory
}

// Task is a named step of the journey with an ordered page list. The
// declared order is used for lookup and for the completion walk's entry
// point; actual traversal order is decided by each page's Next().
type Task struct {
	ID    string
	Title string
	Pages []PageDef

	// Prerequisites names tasks that must be complete before this one may
	// be started. Explicit and data-driven; gating never depends on section
	// list position.
	Prerequisites []string
}

// Section is a named phase grouping tasks.
type Section struct {
	ID    string
	Title string
	Tasks []Task
}

// Registry resolves (task, page) pairs and exposes the declared ordering.
type Registry struct {
	sections []Section
	tasks    map[string]Task
	pages    map[string]map[string]PageDef
	order    []string
}

// New builds a registry from section literals. It fails on duplicate task or
// page IDs, on tasks without pages, and on prerequisites naming tasks that
// are not registered or forming a cycle, so a malformed journey is caught at
// startup rather than at request time.
func New(sections ...Section) (*Registry, error) {
	r := &Registry{
		sections: sections,
		tasks:    make(map[string]Task),
		pages:    make(map[string]map[string]PageDef),
	}

	for _, section := range sections {
		for _, task := range section.Tasks {
			if _, exists := r.tasks[task.ID]; exists {
				return nil, fmt.Errorf("duplicate task %q", task.ID)
			}
			if len(task.Pages) == 0 {
				return nil, fmt.Errorf("task %q has no pages", task.ID)
			}
			r.tasks[task.ID] = task
			r.order = append(r.order, task.ID)

			index := make(map[string]PageDef, len(task.Pages))
			for _, page := range task.Pages {
				if _, exists := index[page.ID]; exists {
					return nil, fmt.Errorf("duplicate page %q in task %q", page.ID, task.ID)
				}
				if page.New == nil {
					return nil, fmt.Errorf("page %s/%s has no factory", task.ID, page.ID)
				}
				index[page.ID] = page
			}
			r.pages[task.ID] = index
		}
	}

	for _, task := range r.tasks {
		for _, prereq := range task.Prerequisites {
			if _, ok := r.tasks[prereq]; !ok {
				return nil, fmt.Errorf("task %q requires unknown task %q", task.ID, prereq)
			}
		}
	}

	// Prerequisite chains must be acyclic: status computation follows them
	// recursively, so a cycle would never terminate.
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(r.tasks))
	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("prerequisite cycle through task %q", id)
		case done:
			return nil
		}
		state[id] = visiting
		for _, prereq := range r.tasks[id].Prerequisites {
			if err := visit(prereq); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for _, id := range r.order {
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Must is New for static journey definitions assembled at module load.
func Must(sections ...Section) *Registry {
	r, err := New(sections...)
	if err != nil {
		panic(err)
	}
	return r
}

// GetPage resolves a page definition. A miss at either level is a
// *domain.UnknownPageError, which callers map to a "not found" response.
func (r *Registry) GetPage(taskID, pageID string) (PageDef, error) {
	index, ok := r.pages[taskID]
	if !ok {
		return PageDef{}, &domain.UnknownPageError{TaskID: taskID, PageID: pageID}
	}
	page, ok := index[pageID]
	if !ok {
		return PageDef{}, &domain.UnknownPageError{TaskID: taskID, PageID: pageID}
	}
	return page, nil
}

// Task returns a registered task by ID.
func (r *Registry) Task(taskID string) (Task, bool) {
	task, ok := r.tasks[taskID]
	return task, ok
}

// PagesForTask returns the declared page order for a task.
func (r *Registry) PagesForTask(taskID string) ([]PageDef, error) {
	task, ok := r.tasks[taskID]
	if !ok {
		return nil, &domain.UnknownPageError{TaskID: taskID}
	}
	return task.Pages, nil
}

// TasksForSection returns the declared task order for a section.
func (r *Registry) TasksForSection(sectionID string) ([]Task, error) {
	for _, section := range r.sections {
		if section.ID == sectionID {
			return section.Tasks, nil
		}
	}
	return nil, fmt.Errorf("unknown section %q", sectionID)
}

// Sections returns the declared section order.
func (r *Registry) Sections() []Section {
	return r.sections
}

// TaskOrder returns every task ID in declaration order across sections.
func (r *Registry) TaskOrder() []string {
	return r.order
}
