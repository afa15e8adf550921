package domain

// Space is the tenant. Every other entity row belongs to exactly one space
// and is removed with it.
type Space struct {
	Model
	OwnerID     string  `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Name        string  `gorm:"size:191;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Slug        string  `gorm:"size:191;not null;uniqueIndex" json:"slug"`
}

var SpaceSortable = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"slug":      "slug",
}

type SpaceInsert struct {
	OwnerID     string  `json:"ownerId" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=2,max=191"`
	Description *string `json:"description"`
	Slug        string  `json:"slug" validate:"required,slug,max=191"`
}

func (in *SpaceInsert) SetOwnerID(id string) { in.OwnerID = id }

func (in SpaceInsert) ToEntity() *Space {
	return &Space{OwnerID: in.OwnerID, Name: in.Name, Description: in.Description, Slug: in.Slug}
}

type SpaceUpdate struct {
	ID          *string `json:"id" validate:"isdefault"`
	OwnerID     *string `json:"ownerId" validate:"isdefault"`
	Name        *string `json:"name" validate:"omitnil,min=2,max=191"`
	Description *string `json:"description"`
	Slug        *string `json:"slug" validate:"omitnil,slug,max=191"`
}

func (in SpaceUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "name", in.Name)
	set(m, "description", in.Description)
	set(m, "slug", in.Slug)
	return m
}
