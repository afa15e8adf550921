package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var contactTable = Table{
	Label:        "contacts",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "name",
	Sortable:     domain.ContactSortable,
}

type ContactRepo struct{ *Gorm[domain.Contact] }

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{NewGorm[domain.Contact](db, contactTable)}
}

func (r *ContactRepo) FindByDocumentInSpace(ctx context.Context, document, spaceID, excludeID string) (*domain.Contact, error) {
	tx := r.conn(ctx).Model(&domain.Contact{}).Where("document = ? AND space_id = ?", document, spaceID)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	return first[domain.Contact](tx)
}
