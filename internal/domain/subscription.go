package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
)

type Subscription struct {
	Model
	SpaceID     string          `gorm:"type:varchar(36);not null;index" json:"spaceId"`
	Space       *Space          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CustomerID  string          `gorm:"type:varchar(36);not null;index" json:"customerId"`
	PlanName    string          `gorm:"size:191;not null" json:"planName"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
	Status      string          `gorm:"size:16;not null;index" json:"status"`
	StartedAt   time.Time       `gorm:"not null" json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt"`
	TrialEndsAt *time.Time      `json:"trialEndsAt"`
}

var SubscriptionSortable = map[string]string{
	"createdAt": "created_at",
	"startedAt": "started_at",
	"planName":  "plan_name",
	"status":    "status",
	"amount":    "amount",
}

type SubscriptionInsert struct {
	SpaceID     string          `json:"spaceId" validate:"required,uuid"`
	CustomerID  string          `json:"customerId" validate:"required,uuid"`
	PlanName    string          `json:"planName" validate:"required,min=2,max=191"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	Currency    string          `json:"currency" validate:"omitempty,len=3,uppercase"`
	Status      string          `json:"status" validate:"omitempty,oneof=active canceled past_due"`
	StartedAt   *time.Time      `json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt"`
	TrialEndsAt *time.Time      `json:"trialEndsAt"`
}

func (in *SubscriptionInsert) SetSpaceID(id string) { in.SpaceID = id }

func (in SubscriptionInsert) ToEntity() *Subscription {
	s := &Subscription{
		SpaceID:     in.SpaceID,
		CustomerID:  in.CustomerID,
		PlanName:    in.PlanName,
		Amount:      in.Amount.Round(2),
		Currency:    in.Currency,
		Status:      in.Status,
		FinishedAt:  in.FinishedAt,
		TrialEndsAt: in.TrialEndsAt,
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.Status == "" {
		s.Status = SubscriptionActive
	}
	if in.StartedAt != nil {
		s.StartedAt = in.StartedAt.UTC()
	} else {
		s.StartedAt = time.Now().UTC()
	}
	return s
}

type SubscriptionUpdate struct {
	ID          *string          `json:"id" validate:"isdefault"`
	SpaceID     *string          `json:"spaceId" validate:"isdefault"`
	CustomerID  *string          `json:"customerId" validate:"omitnil,uuid"`
	PlanName    *string          `json:"planName" validate:"omitnil,min=2,max=191"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitnil,gte=0"`
	Currency    *string          `json:"currency" validate:"omitnil,len=3,uppercase"`
	Status      *string          `json:"status" validate:"omitnil,oneof=active canceled past_due"`
	StartedAt   *time.Time       `json:"startedAt"`
	FinishedAt  *time.Time       `json:"finishedAt"`
	TrialEndsAt *time.Time       `json:"trialEndsAt"`
}

func (in SubscriptionUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "customer_id", in.CustomerID)
	set(m, "plan_name", in.PlanName)
	if in.Amount != nil {
		m["amount"] = in.Amount.Round(2)
	}
	set(m, "currency", in.Currency)
	set(m, "status", in.Status)
	set(m, "started_at", in.StartedAt)
	set(m, "finished_at", in.FinishedAt)
	set(m, "trial_ends_at", in.TrialEndsAt)
	return m
}
