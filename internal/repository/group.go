package repository

import (
	"context"
	"errors"

	"steamfinder/internal/cache"
	"steamfinder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupRepository defines persistence operations for groups and rosters.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	ListVisible(ctx context.Context, viewerID uint, limit, offset int) ([]models.Group, error)
	IsMember(ctx context.Context, groupID, userID uint) (bool, error)
	Join(ctx context.Context, groupID, userID uint, role models.GroupRole) (bool, error)
	Members(ctx context.Context, groupID uint) ([]models.User, error)
	MemberCount(ctx context.Context, groupID uint) (int64, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		membership := models.GroupMembership{
			GroupID: group.ID,
			UserID:  group.OwnerID,
			Role:    models.GroupRoleOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Group name already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := cache.Aside(ctx, cache.GroupKey(id), &group, cache.GroupTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Owner").First(&group, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Group", id)
			}
			return models.NewInternalError(err)
		}
		count, err := r.MemberCount(ctx, id)
		if err != nil {
			return err
		}
		group.MemberCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListVisible returns public groups plus private groups the viewer
// belongs to. Private groups stay invisible to everyone else.
func (r *groupRepository) ListVisible(ctx context.Context, viewerID uint, limit, offset int) ([]models.Group, error) {
	var groups []models.Group
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Where("is_private = ? OR id IN (?)",
			false,
			r.db.Model(&models.GroupMembership{}).Select("group_id").Where("user_id = ?", viewerID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Join appends the user to the roster. The capacity check and the
// insert happen in one transaction with the group row locked, so two
// racing joins cannot both pass an under-capacity check. Returns false
// without error when the user is already a member.
func (r *groupRepository) Join(ctx context.Context, groupID, userID uint, role models.GroupRole) (bool, error) {
	joined := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		q := tx
		// Row lock is PostgreSQL-only; sqlite (tests) serializes writers anyway.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Group", groupID)
			}
			return models.NewInternalError(err)
		}

		var existing int64
		if err := tx.Model(&models.GroupMembership{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).
			Count(&existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		if existing > 0 {
			return nil // already a member, idempotent no-op
		}

		var members int64
		if err := tx.Model(&models.GroupMembership{}).
			Where("group_id = ?", groupID).
			Count(&members).Error; err != nil {
			return models.NewInternalError(err)
		}
		if members >= int64(group.MaxMembers) {
			return models.NewCapacityError("Group is full")
		}

		membership := models.GroupMembership{GroupID: groupID, UserID: userID, Role: role}
		if err := tx.Create(&membership).Error; err != nil {
			if isUniqueConstraintError(err) {
				return nil
			}
			return models.NewInternalError(err)
		}
		joined = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if joined {
		cache.Invalidate(ctx, cache.GroupKey(groupID))
	}
	return joined, nil
}

func (r *groupRepository) Members(ctx context.Context, groupID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN group_memberships gm ON gm.user_id = users.id").
		Where("gm.group_id = ?", groupID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *groupRepository) MemberCount(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
