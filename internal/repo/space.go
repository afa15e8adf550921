package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

// A space is its own tenant; listings are scoped by owner.
var spaceTable = Table{
	Label:        "spaces",
	TenantColumn: "id",
	ScopeColumn:  "owner_id",
	SearchColumn: "name",
	Sortable:     domain.SpaceSortable,
}

type SpaceRepo struct{ *Gorm[domain.Space] }

func NewSpaceRepo(db *gorm.DB) *SpaceRepo {
	return &SpaceRepo{NewGorm[domain.Space](db, spaceTable)}
}

func (r *SpaceRepo) FindBySlug(ctx context.Context, slug string) (*domain.Space, error) {
	return first[domain.Space](r.conn(ctx).Model(&domain.Space{}).Where("slug = ?", slug))
}

func (r *SpaceRepo) FindByOwnerID(ctx context.Context, ownerID string) ([]domain.Space, error) {
	return r.list(r.conn(ctx).Model(&domain.Space{}).Where("owner_id = ?", ownerID))
}
