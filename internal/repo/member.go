package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var memberTable = Table{
	Label:        "members",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "role",
	Sortable:     domain.MemberSortable,
}

type MemberRepo struct{ *Gorm[domain.Member] }

func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{NewGorm[domain.Member](db, memberTable)}
}

// FindByUserID lists the memberships of a user across every space.
func (r *MemberRepo) FindByUserID(ctx context.Context, userID string) ([]domain.Member, error) {
	return r.list(r.conn(ctx).Model(&domain.Member{}).Where("user_id = ?", userID))
}

func (r *MemberRepo) FindBySpaceID(ctx context.Context, spaceID string) ([]domain.Member, error) {
	return r.list(r.conn(ctx).Model(&domain.Member{}).Where("space_id = ?", spaceID))
}

func (r *MemberRepo) FindByUserInSpace(ctx context.Context, userID, spaceID string) (*domain.Member, error) {
	return first[domain.Member](r.conn(ctx).Model(&domain.Member{}).Where("user_id = ? AND space_id = ?", userID, spaceID))
}
