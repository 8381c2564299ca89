package models

import "time"

// GroupRole defines a member's role in a group.
type GroupRole string

const (
	// GroupRoleOwner is the group owner role.
	GroupRoleOwner GroupRole = "owner"
	// GroupRoleMember is the default member role.
	GroupRoleMember GroupRole = "member"
)

// Group is a gaming community users can join. Private groups are not
// visible to non-members. Joining is gated by roster capacity and the
// minimum skill level.
type Group struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	IsPrivate     bool      `gorm:"not null;default:false" json:"is_private"`
	MaxMembers    int       `gorm:"not null;default:50" json:"max_members"`
	MinSkillLevel int       `gorm:"not null;default:1" json:"min_skill_level"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	Owner         *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	MemberCount int64 `gorm:"-" json:"member_count,omitempty"`
}

// TableName specifies the table name for GORM
func (Group) TableName() string {
	return "groups"
}

// GroupMembership maps users to groups and tracks role.
type GroupMembership struct {
	GroupID   uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      GroupRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (GroupMembership) TableName() string {
	return "group_memberships"
}
