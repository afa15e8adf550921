package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceDraft = "draft"
	InvoiceOpen  = "open"
	InvoicePaid  = "paid"
	InvoiceVoid  = "void"
)

type Invoice struct {
	Model
	SpaceID        string          `gorm:"type:varchar(36);not null;index" json:"spaceId"`
	Space          *Space          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SubscriptionID string          `gorm:"type:varchar(36);not null;index" json:"subscriptionId"`
	Number         string          `gorm:"size:64;not null" json:"number"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency       string          `gorm:"size:3;not null" json:"currency"`
	DueDate        time.Time       `gorm:"not null;index" json:"dueDate"`
	PaidAt         *time.Time      `json:"paidAt"`
	Status         string          `gorm:"size:16;not null;index" json:"status"`
}

var InvoiceSortable = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"amount":    "amount",
	"status":    "status",
	"number":    "number",
}

type InvoiceInsert struct {
	SpaceID        string          `json:"spaceId" validate:"required,uuid"`
	SubscriptionID string          `json:"subscriptionId" validate:"required,uuid"`
	Number         string          `json:"number" validate:"max=64"`
	Amount         decimal.Decimal `json:"amount" validate:"gte=0"`
	Currency       string          `json:"currency" validate:"omitempty,len=3,uppercase"`
	DueDate        time.Time       `json:"dueDate" validate:"required"`
	PaidAt         *time.Time      `json:"paidAt"`
	Status         string          `json:"status" validate:"omitempty,oneof=draft open paid void"`
}

func (in *InvoiceInsert) SetSpaceID(id string) { in.SpaceID = id }

// ToEntity fills the defaults. An empty number is derived from the due date
// once the id is known.
func (in InvoiceInsert) ToEntity() *Invoice {
	inv := &Invoice{
		SpaceID:        in.SpaceID,
		SubscriptionID: in.SubscriptionID,
		Number:         in.Number,
		Amount:         in.Amount.Round(2),
		Currency:       in.Currency,
		DueDate:        in.DueDate.UTC(),
		PaidAt:         in.PaidAt,
		Status:         in.Status,
	}
	if inv.Currency == "" {
		inv.Currency = DefaultCurrency
	}
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
	if inv.Number == "" {
		inv.EnsureID()
		inv.Number = InvoiceNumber(inv.DueDate, inv.ID)
	}
	return inv
}

// InvoiceNumber formats INV-YYYYMM-XXXXXXXX from the due date and the id.
func InvoiceNumber(due time.Time, id string) string {
	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "INV-" + due.Format("200601") + "-" + upper(suffix)
}

type InvoiceUpdate struct {
	ID             *string          `json:"id" validate:"isdefault"`
	SpaceID        *string          `json:"spaceId" validate:"isdefault"`
	SubscriptionID *string          `json:"subscriptionId" validate:"omitnil,uuid"`
	Number         *string          `json:"number" validate:"omitnil,min=1,max=64"`
	Amount         *decimal.Decimal `json:"amount" validate:"omitnil,gte=0"`
	Currency       *string          `json:"currency" validate:"omitnil,len=3,uppercase"`
	DueDate        *time.Time       `json:"dueDate"`
	PaidAt         *time.Time       `json:"paidAt"`
	Status         *string          `json:"status" validate:"omitnil,oneof=draft open paid void"`
}

func (in InvoiceUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "subscription_id", in.SubscriptionID)
	set(m, "number", in.Number)
	if in.Amount != nil {
		m["amount"] = in.Amount.Round(2)
	}
	set(m, "currency", in.Currency)
	if in.DueDate != nil {
		m["due_date"] = in.DueDate.UTC()
	}
	if in.PaidAt != nil {
		m["paid_at"] = in.PaidAt.UTC()
	}
	set(m, "status", in.Status)
	return m
}
