package runtime

import (
	"context"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/tasklist"
)

// PageReview is one answered page's human-readable question/answer pairs,
// as declared by the page's Response method.
type PageReview struct {
	PageID string            `json:"pageId"`
	Items  map[string]string `json:"items"`
}

// TaskReview groups the answered pages of one task for the
// check-your-answers screen.
type TaskReview struct {
	TaskID string       `json:"taskId"`
	Title  string       `json:"title"`
	Pages  []PageReview `json:"pages"`
}

// Review builds the check-your-answers view: for every task, the pages
// reachable by replaying the stored answers, each rendered through its
// Response method. Pages skipped by branching never appear, so the review
// mirrors exactly the path the caseworker took.
func (e *Engine) Review(ctx context.Context, token string, artifact *domain.Artifact) ([]TaskReview, error) {
	var reviews []TaskReview

	for _, taskID := range e.registry.TaskOrder() {
		task, _ := e.registry.Task(taskID)

		pageIDs, err := tasklist.ReachablePages(e.registry, taskID, artifact)
		if err != nil {
			return nil, err
		}

		review := TaskReview{TaskID: taskID, Title: task.Title}
		for _, pageID := range pageIDs {
			req := domain.Request{Token: token, ArtifactID: artifact.ID, TaskID: taskID, PageID: pageID}
			page, err := e.buildPage(ctx, req, artifact.PageBody(taskID, pageID), artifact)
			if err != nil {
				return nil, err
			}
			review.Pages = append(review.Pages, PageReview{
				PageID: pageID,
				Items:  page.Response(),
			})
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
