package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github-pr-watcher/pkg/zoho"
)

const maxParallelProjects = 4

// match is a task whose key was found on the board.
type match struct {
	projectID string
	task      zoho.Task
}

// SyncReadyForQA promotes tasks of recently merged branches to Ready For QA.
func (uc *usecase) SyncReadyForQA(ctx context.Context, input SyncInput) (SyncOutput, error) {
	if input.Repository == "" || input.TargetBranch == "" {
		return SyncOutput{}, fmt.Errorf("%w: repository and target branch are required", ErrInvalidInput)
	}
	if input.LookbackDays <= 0 {
		input.LookbackDays = DefaultLookbackDays
	}
	statusID, err := uc.statusID(StatusReadyForQA)
	if err != nil {
		return SyncOutput{}, err
	}

	since := uc.cfg.Now().Add(-time.Duration(input.LookbackDays) * 24 * time.Hour)
	prs, err := uc.prs.ListMergedPullRequests(ctx, input.Repository, input.TargetBranch, since)
	if err != nil {
		return SyncOutput{}, fmt.Errorf("failed to list merged pull requests: %w", err)
	}

	branches := mapset.NewSet[string]()
	for _, pr := range prs {
		if pr.HeadRef != "" {
			branches.Add(pr.HeadRef)
		}
	}
	out := SyncOutput{Branches: branches.ToSlice(), Tasks: []TaskUpdate{}}
	sort.Strings(out.Branches)

	uc.l.Infof(ctx, "internal.tracker.SyncReadyForQA: %d branches merged into %s since %s",
		branches.Cardinality(), input.TargetBranch, since.Format(time.RFC3339))
	if branches.Cardinality() == 0 {
		return out, nil
	}

	portalID, err := uc.portal(ctx)
	if err != nil {
		return SyncOutput{}, err
	}

	matches, err := uc.findTasks(ctx, portalID, func(t zoho.Task) (bool, error) {
		if t.Key == input.TargetBranch {
			return false, fmt.Errorf("%w: %s", ErrTargetIsTaskKey, t.Key)
		}
		return branches.Contains(t.Key), nil
	})
	if err != nil {
		return SyncOutput{}, err
	}

	for _, m := range matches {
		out.Tasks = append(out.Tasks, uc.apply(ctx, portalID, m, statusID, input.Comment))
	}

	uc.l.Infof(ctx, "internal.tracker.SyncReadyForQA: %d tasks matched", len(out.Tasks))
	return out, nil
}

// UpdateStatusByKey moves one task to the named status and comments on it.
func (uc *usecase) UpdateStatusByKey(ctx context.Context, input UpdateStatusInput) (TaskUpdate, error) {
	if input.TaskKey == "" {
		return TaskUpdate{}, fmt.Errorf("%w: task key is required", ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = StatusReadyForReview
	}
	statusID, err := uc.statusID(input.Status)
	if err != nil {
		return TaskUpdate{}, err
	}

	portalID, err := uc.portal(ctx)
	if err != nil {
		return TaskUpdate{}, err
	}

	matches, err := uc.findTasks(ctx, portalID, func(t zoho.Task) (bool, error) {
		return t.Key == input.TaskKey, nil
	})
	if err != nil {
		return TaskUpdate{}, err
	}
	if len(matches) == 0 {
		return TaskUpdate{}, fmt.Errorf("%w: %s", ErrTaskNotFound, input.TaskKey)
	}

	update := uc.apply(ctx, portalID, matches[0], statusID, input.Comment)
	if !update.Updated {
		return update, fmt.Errorf("failed to update %s: %s", input.TaskKey, update.Error)
	}
	return update, nil
}

// findTasks scans every project of the portal concurrently. A predicate error aborts the scan.
func (uc *usecase) findTasks(ctx context.Context, portalID string, pred func(zoho.Task) (bool, error)) ([]match, error) {
	projects, err := uc.board.ListProjects(ctx, portalID)
	if err != nil {
		return nil, err
	}

	perProject := make([][]match, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelProjects)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			projectID := p.ID.String()
			tasks, err := uc.board.ListTasks(gctx, portalID, projectID)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				ok, err := pred(t)
				if err != nil {
					return err
				}
				if ok {
					perProject[i] = append(perProject[i], match{projectID: projectID, task: t})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []match
	for _, ms := range perProject {
		all = append(all, ms...)
	}
	return all, nil
}

// apply updates the status of one task and posts the optional comment. Failures are
// reported in the TaskUpdate rather than aborting the batch.
func (uc *usecase) apply(ctx context.Context, portalID string, m match, statusID, comment string) TaskUpdate {
	update := TaskUpdate{
		Key:       m.task.Key,
		Title:     m.task.Name,
		Link:      m.task.WebURL(),
		ProjectID: m.projectID,
		TaskID:    m.task.ID.String(),
	}

	if err := uc.board.UpdateTaskStatus(ctx, portalID, update.ProjectID, update.TaskID, statusID); err != nil {
		uc.l.Errorf(ctx, "internal.tracker.apply: %s: %v", update.Key, err)
		update.Error = err.Error()
		return update
	}
	update.Updated = true

	if err := uc.board.AddComment(ctx, portalID, update.ProjectID, update.TaskID, comment); err != nil {
		uc.l.Warnf(ctx, "internal.tracker.apply: comment on %s: %v", update.Key, err)
	}
	return update
}

func (uc *usecase) statusID(name string) (string, error) {
	id, ok := uc.statuses[strings.ToLower(name)]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, name)
	}
	return id, nil
}

// portal resolves the configured portal once; failures are retried on the next call.
func (uc *usecase) portal(ctx context.Context) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.portalID != "" {
		return uc.portalID, nil
	}
	id, err := uc.board.PortalIDByName(ctx, uc.cfg.PortalName)
	if err != nil {
		return "", err
	}
	uc.portalID = id
	return id, nil
}
