package inventory

import (
	"context"

	"github.com/Aidin1998/laptrack/internal/events"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func (s *Service) CreateIssue(ctx context.Context, req *models.CreateIssueRequest) (*models.Issue, error) {
	s.validator.SanitizeAll(&req.Title, &req.Description)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	laptopID, err := parseID("laptop", req.LaptopID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetLaptop(ctx, laptopID); err != nil {
		return nil, err
	}

	issue := &models.Issue{
		LaptopID:    laptopID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      models.IssueOpen,
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}
	if req.ReportedBy != "" {
		reporter, err := parseID("employee", req.ReportedBy)
		if err != nil {
			return nil, err
		}
		if _, err := s.store.GetEmployee(ctx, reporter); err != nil {
			return nil, err
		}
		issue.ReportedBy = &reporter
	}

	if err := s.store.CreateIssue(ctx, issue); err != nil {
		return nil, err
	}

	s.recorded(ctx, "issue", "create", events.IssueCreated, issue.ID, issue)
	return issue, nil
}

func (s *Service) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	oid, err := parseID("issue", id)
	if err != nil {
		return nil, err
	}
	return s.store.GetIssue(ctx, oid)
}

func (s *Service) ListIssues(ctx context.Context, filter models.IssueFilter, page models.Page) ([]*models.Issue, int64, error) {
	return s.store.ListIssues(ctx, filter, page.Normalize())
}

// UpdateIssue stamps resolved_at when the issue reaches resolved or closed and
// clears it when the issue is reopened.
func (s *Service) UpdateIssue(ctx context.Context, id string, req *models.UpdateIssueRequest) (*models.Issue, error) {
	oid, err := parseID("issue", id)
	if err != nil {
		return nil, err
	}
	s.validator.SanitizeAll(req.Title, req.Description, req.Resolution)
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	issue, err := s.store.GetIssue(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		issue.Title = *req.Title
	}
	if req.Description != nil {
		issue.Description = *req.Description
	}
	if req.Priority != nil {
		issue.Priority = *req.Priority
	}
	if req.Resolution != nil {
		issue.Resolution = *req.Resolution
	}
	if req.Status != nil {
		issue.Status = *req.Status
		switch {
		case issue.Status.Terminal() && issue.ResolvedAt == nil:
			now := s.now()
			issue.ResolvedAt = &now
		case !issue.Status.Terminal():
			issue.ResolvedAt = nil
		}
	}

	if err := s.store.UpdateIssue(ctx, issue); err != nil {
		return nil, err
	}

	s.recorded(ctx, "issue", "update", events.IssueUpdated, issue.ID, issue)
	return issue, nil
}

func (s *Service) DeleteIssue(ctx context.Context, id string) error {
	oid, err := parseID("issue", id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIssue(ctx, oid); err != nil {
		return err
	}

	s.recorded(ctx, "issue", "delete", events.IssueDeleted, oid, nil)
	return nil
}
