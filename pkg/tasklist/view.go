package tasklist

import (
	"fmt"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/registry"
)

// TaskRow is one task line of the tasklist screen.
type TaskRow struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`

	// FirstPage is the slug a not-yet-started task links to.
	FirstPage string `json:"firstPage"`
}

// SectionView groups the task rows of one journey phase.
type SectionView struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Tasks []TaskRow `json:"tasks"`
}

// View computes the rendered-ready tasklist: every section and task in
// declared order, each task carrying its computed status.
func View(reg *registry.Registry, artifact *domain.Artifact) ([]SectionView, error) {
	sections := reg.Sections()
	views := make([]SectionView, 0, len(sections))

	for _, section := range sections {
		view := SectionView{
			ID:    section.ID,
			Title: section.Title,
			Tasks: make([]TaskRow, 0, len(section.Tasks)),
		}
		for _, task := range section.Tasks {
			status, err := TaskStatus(reg, task.ID, artifact)
			if err != nil {
				return nil, fmt.Errorf("computing status of task %q: %w", task.ID, err)
			}
			view.Tasks = append(view.Tasks, TaskRow{
				ID:        task.ID,
				Title:     task.Title,
				Status:    status,
				FirstPage: task.Pages[0].ID,
			})
		}
		views = append(views, view)
	}

	return views, nil
}

// Complete reports whether every task in the journey is complete, gating
// submission of the artifact.
func Complete(reg *registry.Registry, artifact *domain.Artifact) (bool, error) {
	for _, taskID := range reg.TaskOrder() {
		status, err := TaskStatus(reg, taskID, artifact)
		if err != nil {
			return false, err
		}
		if status != StatusComplete {
			return false, nil
		}
	}
	return true, nil
}
