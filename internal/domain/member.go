package domain

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Member binds a user to a space with a role. One row per (user, space).
type Member struct {
	Model
	SpaceID string `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_members_user_space,priority:2" json:"spaceId"`
	Space   *Space `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_members_user_space,priority:1" json:"userId"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role    string `gorm:"size:16;not null" json:"role"`
}

var MemberSortable = map[string]string{
	"createdAt": "created_at",
	"role":      "role",
}

type MemberInsert struct {
	SpaceID string `json:"spaceId" validate:"required,uuid"`
	UserID  string `json:"userId" validate:"required,uuid"`
	Role    string `json:"role" validate:"omitempty,oneof=owner admin member"`
}

func (in *MemberInsert) SetSpaceID(id string) { in.SpaceID = id }

func (in MemberInsert) ToEntity() *Member {
	m := &Member{SpaceID: in.SpaceID, UserID: in.UserID, Role: in.Role}
	if m.Role == "" {
		m.Role = RoleMember
	}
	return m
}

// MemberUpdate only allows the role to change.
type MemberUpdate struct {
	ID      *string `json:"id" validate:"isdefault"`
	SpaceID *string `json:"spaceId" validate:"isdefault"`
	UserID  *string `json:"userId" validate:"isdefault"`
	Role    *string `json:"role" validate:"omitnil,oneof=owner admin member"`
}

func (in MemberUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "role", in.Role)
	return m
}

// CanManage reports whether role may administer the space.
func CanManage(role string) bool { return role == RoleOwner || role == RoleAdmin }
