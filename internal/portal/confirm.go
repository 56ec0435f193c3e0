package portal

import (
	"context"
	"fmt"

	"github.com/venapictures/studio/internal/entity"
	"github.com/venapictures/studio/internal/store"
)

var stageColumns = map[string]string{
	StageEditing:  "is_editing_confirmed_by_client",
	StagePrinting: "is_printing_confirmed_by_client",
	StageDelivery: "is_delivery_confirmed_by_client",
}

// ConfirmStage records the client's sign-off on one stage of their project.
func (s *Service) ConfirmStage(ctx context.Context, accessID, projectID, stage string) (entity.Project, error) {
	column, ok := stageColumns[stage]
	if !ok {
		return entity.Project{}, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	client, err := s.clientByAccess(ctx, accessID)
	if err != nil {
		return entity.Project{}, err
	}
	if _, err := s.ownProject(ctx, client, projectID); err != nil {
		return entity.Project{}, err
	}

	updated, err := s.tables.Projects.Update(ctx, projectID, store.Patch{column: true})
	if err != nil {
		return entity.Project{}, fmt.Errorf("confirming %s: %w", stage, err)
	}
	return updated, nil
}

// ConfirmSubStatus records the client's confirmation of a sub-status with a
// note, and raises a dashboard notification pointing at the project.
func (s *Service) ConfirmSubStatus(ctx context.Context, accessID, projectID, subStatus, note string) (entity.Project, error) {
	client, err := s.clientByAccess(ctx, accessID)
	if err != nil {
		return entity.Project{}, err
	}
	project, err := s.ownProject(ctx, client, projectID)
	if err != nil {
		return entity.Project{}, err
	}

	confirmed := append(append([]string{}, project.ConfirmedSubStatuses...), subStatus)
	notes := make(map[string]string, len(project.ClientSubStatusNotes)+1)
	for k, v := range project.ClientSubStatusNotes {
		notes[k] = v
	}
	notes[subStatus] = note

	updated, err := s.tables.Projects.Update(ctx, projectID, store.Patch{
		"confirmed_sub_statuses":  confirmed,
		"client_sub_status_notes": notes,
	})
	if err != nil {
		return entity.Project{}, fmt.Errorf("confirming sub-status: %w", err)
	}

	_, err = s.tables.Notifications.Create(ctx, entity.Notification{
		Title: "Catatan Klien Baru",
		Message: fmt.Sprintf("Klien %s memberikan catatan pada sub-status %q di proyek %q.",
			updated.ClientName, subStatus, updated.ProjectName),
		Timestamp: s.timestamp(),
		Icon:      "comment",
		Link:      &entity.NotificationLink{View: "Proyek", Action: "VIEW_PROJECT_DETAILS", ID: projectID},
	})
	if err != nil {
		return updated, fmt.Errorf("creating notification: %w", err)
	}
	return updated, nil
}

// SignContract stores the client's signature on one of their contracts.
func (s *Service) SignContract(ctx context.Context, accessID, contractID, signature string) (entity.Contract, error) {
	client, err := s.clientByAccess(ctx, accessID)
	if err != nil {
		return entity.Contract{}, err
	}
	contract, err := s.tables.Contracts.GetByID(ctx, contractID)
	if err != nil {
		return entity.Contract{}, fmt.Errorf("loading contract: %w", err)
	}
	if contract == nil || contract.ClientID != client.ID {
		return entity.Contract{}, ErrPortalNotFound
	}

	updated, err := s.tables.Contracts.Update(ctx, contractID, store.Patch{"client_signature": signature})
	if err != nil {
		return entity.Contract{}, fmt.Errorf("signing contract: %w", err)
	}
	return updated, nil
}

// RevisionUpdate is what a freelancer reports back on a revision.
type RevisionUpdate struct {
	FreelancerID    string `json:"freelancerId"`
	FreelancerNotes string `json:"freelancerNotes"`
	DriveLink       string `json:"driveLink"`
	Status          string `json:"status"`
}

// UpdateRevision applies a freelancer's report to one revision. Completing
// a revision stamps its completion date. When FreelancerID is set the
// revision must be assigned to that freelancer.
func (s *Service) UpdateRevision(ctx context.Context, projectID, revisionID string, upd RevisionUpdate) (entity.Project, error) {
	switch upd.Status {
	case entity.RevisionPending, entity.RevisionInProgress, entity.RevisionCompleted:
	default:
		return entity.Project{}, fmt.Errorf("%w: %q", ErrInvalidStatus, upd.Status)
	}

	project, err := s.tables.Projects.GetByID(ctx, projectID)
	if err != nil {
		return entity.Project{}, fmt.Errorf("loading project: %w", err)
	}
	if project == nil {
		return entity.Project{}, ErrPortalNotFound
	}

	revisions := append([]entity.Revision{}, project.Revisions...)
	found := false
	for i := range revisions {
		r := &revisions[i]
		if r.ID != revisionID {
			continue
		}
		if upd.FreelancerID != "" && r.FreelancerID != upd.FreelancerID {
			return entity.Project{}, ErrPortalNotFound
		}
		r.FreelancerNotes = upd.FreelancerNotes
		r.DriveLink = upd.DriveLink
		r.Status = upd.Status
		if upd.Status == entity.RevisionCompleted {
			r.CompletedDate = s.timestamp()
		}
		found = true
	}
	if !found {
		return entity.Project{}, ErrPortalNotFound
	}

	updated, err := s.tables.Projects.Update(ctx, projectID, store.Patch{"revisions": revisions})
	if err != nil {
		return entity.Project{}, fmt.Errorf("updating revision: %w", err)
	}
	return updated, nil
}

// UpdateMemberRevision is UpdateRevision from the freelancer portal: the
// revision must be assigned to the portal owner.
func (s *Service) UpdateMemberRevision(ctx context.Context, accessID, projectID, revisionID string, upd RevisionUpdate) (entity.Project, error) {
	member, err := s.memberByAccess(ctx, accessID)
	if err != nil {
		return entity.Project{}, err
	}
	upd.FreelancerID = member.ID
	return s.UpdateRevision(ctx, projectID, revisionID, upd)
}
