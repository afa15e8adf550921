package database

import (
	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

// Models lists every table owned by the application, parents first.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Space{},
		&domain.Member{},
		&domain.Contact{},
		&domain.Product{},
		&domain.Customer{},
		&domain.Subscription{},
		&domain.Invoice{},
		&domain.Project{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
