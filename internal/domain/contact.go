package domain

import "strings"

const (
	ContactNew         = "NEW"
	ContactQualified   = "QUALIFIED"
	ContactNegotiation = "NEGOTIATION"
	ContactConverted   = "CONVERTED"
	ContactLost        = "LOST"
)

type Contact struct {
	Model
	SpaceID   string  `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_contacts_space_document,priority:1" json:"spaceId"`
	Space     *Space  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AvatarURL *string `gorm:"column:avatar_url;size:512" json:"avatarUrl"`
	Name      string  `gorm:"size:191;not null" json:"name"`
	Email     string  `gorm:"size:191;not null" json:"email"`
	Phone     *string `gorm:"size:32" json:"phone"`
	Notes     *string `gorm:"type:text" json:"notes"`
	Document  *string `gorm:"size:32;uniqueIndex:idx_contacts_space_document,priority:2" json:"document"`
	Type      string  `gorm:"size:16;not null" json:"type"`
}

// ContactSortable maps the public sort fields to columns.
var ContactSortable = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
	"type":      "type",
}

type ContactInsert struct {
	SpaceID   string  `json:"spaceId" validate:"required,uuid"`
	AvatarURL *string `json:"avatarUrl" validate:"omitnil,url"`
	Name      string  `json:"name" validate:"required,min=2,max=191"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitnil,max=32"`
	Notes     *string `json:"notes"`
	Document  *string `json:"document" validate:"omitnil,max=32"`
	Type      string  `json:"type" validate:"omitempty,oneof=NEW QUALIFIED NEGOTIATION CONVERTED LOST"`
}

func (in *ContactInsert) SetSpaceID(id string) { in.SpaceID = id }

func (in ContactInsert) ToEntity() *Contact {
	c := &Contact{
		SpaceID:   in.SpaceID,
		AvatarURL: in.AvatarURL,
		Name:      in.Name,
		Email:     strings.ToLower(in.Email),
		Phone:     in.Phone,
		Notes:     in.Notes,
		Document:  blankToNil(in.Document),
		Type:      in.Type,
	}
	if c.Type == "" {
		c.Type = ContactNew
	}
	return c
}

// ContactUpdate is a partial update; nil fields are left untouched.
type ContactUpdate struct {
	ID        *string `json:"id" validate:"isdefault"`
	SpaceID   *string `json:"spaceId" validate:"isdefault"`
	AvatarURL *string `json:"avatarUrl" validate:"omitnil,url"`
	Name      *string `json:"name" validate:"omitnil,min=2,max=191"`
	Email     *string `json:"email" validate:"omitnil,email"`
	Phone     *string `json:"phone" validate:"omitnil,max=32"`
	Notes     *string `json:"notes"`
	Document  *string `json:"document" validate:"omitnil,max=32"`
	Type      *string `json:"type" validate:"omitnil,oneof=NEW QUALIFIED NEGOTIATION CONVERTED LOST"`
}

func (in ContactUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "avatar_url", in.AvatarURL)
	set(m, "name", in.Name)
	if in.Email != nil {
		m["email"] = strings.ToLower(*in.Email)
	}
	set(m, "phone", in.Phone)
	set(m, "notes", in.Notes)
	if in.Document != nil {
		m["document"] = blankToNil(in.Document)
	}
	set(m, "type", in.Type)
	return m
}
