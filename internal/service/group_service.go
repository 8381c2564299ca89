package service

import (
	"context"
	"strings"

	"steamfinder/internal/models"
	"steamfinder/internal/repository"
	"steamfinder/internal/validation"
)

// GroupService provides group roster business logic.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo, userRepo: userRepo}
}

// Create makes a new group owned by the creator, who becomes its first
// member.
func (s *GroupService) Create(ctx context.Context, ownerID uint, name, description string, isPrivate bool, maxMembers, minSkillLevel int) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if maxMembers < 1 {
		return nil, models.NewValidationError("Group capacity must be at least 1")
	}
	if minSkillLevel < 1 {
		minSkillLevel = 1
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:          name,
		Description:   description,
		IsPrivate:     isPrivate,
		MaxMembers:    maxMembers,
		MinSkillLevel: minSkillLevel,
		OwnerID:       ownerID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	group.MemberCount = 1
	return group, nil
}

// Get returns a group. Private groups are only visible to members; to
// anyone else the group does not exist.
func (s *GroupService) Get(ctx context.Context, viewerID, groupID uint) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.IsPrivate {
		member, err := s.groupRepo.IsMember(ctx, groupID, viewerID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewNotFoundError("Group", groupID)
		}
	}
	return group, nil
}

// List returns the groups visible to the viewer.
func (s *GroupService) List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Group, error) {
	return s.groupRepo.ListVisible(ctx, viewerID, limit, offset)
}

// Join adds the user to the group roster. The user must meet the skill
// gate; the roster must have room. Joining a group the user already
// belongs to is an idempotent no-op.
func (s *GroupService) Join(ctx context.Context, userID, groupID uint) (joined bool, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return false, err
	}
	if group.IsPrivate {
		member, err := s.groupRepo.IsMember(ctx, groupID, userID)
		if err != nil {
			return false, err
		}
		if !member {
			// Invisible to outsiders, so joining uninvited is indistinguishable
			// from the group not existing.
			return false, models.NewNotFoundError("Group", groupID)
		}
		return false, nil
	}
	if user.SkillLevel < group.MinSkillLevel {
		return false, models.NewEligibilityError("Your skill level does not meet the group requirement")
	}

	// Capacity is enforced inside the repository transaction.
	return s.groupRepo.Join(ctx, groupID, userID, models.GroupRoleMember)
}

// Members returns the roster. Private group rosters require membership.
func (s *GroupService) Members(ctx context.Context, viewerID, groupID uint) ([]models.User, error) {
	if _, err := s.Get(ctx, viewerID, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.Members(ctx, groupID)
}
