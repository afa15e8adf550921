package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var projectTable = Table{
	Label:        "projects",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "title",
	Sortable:     domain.ProjectSortable,
}

type ProjectRepo struct{ *Gorm[domain.Project] }

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{NewGorm[domain.Project](db, projectTable)}
}

// FindBySlug looks across every space; slugs are globally unique.
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return first[domain.Project](r.conn(ctx).Model(&domain.Project{}).Where("slug = ?", slug))
}

func (r *ProjectRepo) FindByOwnerID(ctx context.Context, ownerID, spaceID string) ([]domain.Project, error) {
	return r.list(r.conn(ctx).Model(&domain.Project{}).Where("owner_id = ? AND space_id = ?", ownerID, spaceID))
}
