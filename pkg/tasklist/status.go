// Package tasklist computes the completion state of every task in a journey
// from the registry and an artifact's answers, and builds the ordered view
// the tasklist screen renders. Everything here is a pure function over
// in-memory data: deterministic, side-effect free, re-computable at any
// point in a request.
package tasklist

import (
	"fmt"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/registry"
)

// Status is a task's completion state.
type Status string

const (
	// StatusCannotStart gates a task whose prerequisites are incomplete.
	StatusCannotStart Status = "cannot_start"
	// StatusNotStarted means no page of the task has been answered yet.
	StatusNotStarted Status = "not_started"
	// StatusInProgress means some but not all reachable pages are answered.
	StatusInProgress Status = "in_progress"
	// StatusComplete means the walk from the first page reached the end of
	// the task with every page on the path answered.
	StatusComplete Status = "complete"
)

// TaskStatus computes the status of one task. Reachability is decided by
// replaying each answered page's Next() against the stored answers, so
// branches skipped by the answers actually given never count against
// completion.
func TaskStatus(reg *registry.Registry, taskID string, artifact *domain.Artifact) (Status, error) {
	task, ok := reg.Task(taskID)
	if !ok {
		return "", &domain.UnknownPageError{TaskID: taskID}
	}

	for _, prereq := range task.Prerequisites {
		status, err := TaskStatus(reg, prereq, artifact)
		if err != nil {
			return "", err
		}
		if status != StatusComplete {
			return StatusCannotStart, nil
		}
	}

	if !artifact.HasTask(taskID) {
		return StatusNotStarted, nil
	}

	complete, _, err := walk(reg, task, artifact)
	if err != nil {
		return "", err
	}
	if complete {
		return StatusComplete, nil
	}
	return StatusInProgress, nil
}

// ReachablePages returns the page slugs visited by replaying the task's
// navigation against the artifact's answers, in traversal order. The walk
// stops at the first unanswered page.
func ReachablePages(reg *registry.Registry, taskID string, artifact *domain.Artifact) ([]string, error) {
	task, ok := reg.Task(taskID)
	if !ok {
		return nil, &domain.UnknownPageError{TaskID: taskID}
	}
	_, visited, err := walk(reg, task, artifact)
	return visited, err
}

// walk follows the page chain from the task's first declared page. A page
// with no stored body stalls the walk (in progress); Next() returning ""
// completes it. Construction or navigation failures propagate: a stored
// answer set that cannot replay is a data-integrity problem, not a status.
func walk(reg *registry.Registry, task registry.Task, artifact *domain.Artifact) (bool, []string, error) {
	current := task.Pages[0].ID
	seen := make(map[string]bool)
	var visited []string

	for current != "" {
		if seen[current] {
			return false, nil, fmt.Errorf("navigation cycle at %s/%s", task.ID, current)
		}
		seen[current] = true

		body := artifact.PageBody(task.ID, current)
		if body == nil {
			return false, visited, nil
		}
		visited = append(visited, current)

		def, err := reg.GetPage(task.ID, current)
		if err != nil {
			return false, nil, err
		}
		page, err := def.New(body, artifact, domain.PageContext{})
		if err != nil {
			return false, nil, err
		}
		next, err := page.Next()
		if err != nil {
			return false, nil, err
		}
		current = next
	}

	return true, visited, nil
}
