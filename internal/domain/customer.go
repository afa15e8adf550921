package domain

import "strings"

const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

type Customer struct {
	Model
	SpaceID string `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_customers_space_email,priority:1" json:"spaceId"`
	Space   *Space `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Email   string `gorm:"size:191;not null;uniqueIndex:idx_customers_space_email,priority:2" json:"email"`
	Name    string `gorm:"size:191;not null" json:"name"`
	Status  string `gorm:"size:16;not null;index" json:"status"`
}

var CustomerSortable = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"email":     "email",
	"status":    "status",
}

type CustomerInsert struct {
	SpaceID string `json:"spaceId" validate:"required,uuid"`
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,min=2,max=191"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (in *CustomerInsert) SetSpaceID(id string) { in.SpaceID = id }

func (in CustomerInsert) ToEntity() *Customer {
	c := &Customer{SpaceID: in.SpaceID, Email: strings.ToLower(in.Email), Name: in.Name, Status: in.Status}
	if c.Status == "" {
		c.Status = CustomerActive
	}
	return c
}

type CustomerUpdate struct {
	ID      *string `json:"id" validate:"isdefault"`
	SpaceID *string `json:"spaceId" validate:"isdefault"`
	Email   *string `json:"email" validate:"omitnil,email"`
	Name    *string `json:"name" validate:"omitnil,min=2,max=191"`
	Status  *string `json:"status" validate:"omitnil,oneof=active inactive"`
}

func (in CustomerUpdate) Changes() map[string]any {
	m := map[string]any{}
	if in.Email != nil {
		m["email"] = strings.ToLower(*in.Email)
	}
	set(m, "name", in.Name)
	set(m, "status", in.Status)
	return m
}
