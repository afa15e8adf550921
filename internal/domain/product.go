package domain

import "github.com/shopspring/decimal"

const DefaultCurrency = "BRL"

type Product struct {
	Model
	SpaceID     string          `gorm:"type:varchar(36);not null;index" json:"spaceId"`
	Space       *Space          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string          `gorm:"size:191;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
}

var ProductSortable = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"amount":    "amount",
}

type ProductInsert struct {
	SpaceID     string          `json:"spaceId" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,min=2,max=191"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	Currency    string          `json:"currency" validate:"omitempty,len=3,uppercase"`
}

func (in *ProductInsert) SetSpaceID(id string) { in.SpaceID = id }

func (in ProductInsert) ToEntity() *Product {
	p := &Product{
		SpaceID:     in.SpaceID,
		Name:        in.Name,
		Description: in.Description,
		Amount:      in.Amount.Round(2),
		Currency:    in.Currency,
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	return p
}

type ProductUpdate struct {
	ID          *string          `json:"id" validate:"isdefault"`
	SpaceID     *string          `json:"spaceId" validate:"isdefault"`
	Name        *string          `json:"name" validate:"omitnil,min=2,max=191"`
	Description *string          `json:"description" validate:"omitnil,min=1"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitnil,gte=0"`
	Currency    *string          `json:"currency" validate:"omitnil,len=3,uppercase"`
}

func (in ProductUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "name", in.Name)
	set(m, "description", in.Description)
	if in.Amount != nil {
		m["amount"] = in.Amount.Round(2)
	}
	set(m, "currency", in.Currency)
	return m
}
