package domain

type Project struct {
	Model
	SpaceID       string  `gorm:"type:varchar(36);not null;index" json:"spaceId"`
	Space         *Space  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	OwnerID       string  `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Title         *string `gorm:"size:191" json:"title"`
	Description   *string `gorm:"type:text" json:"description"`
	Slug          string  `gorm:"size:191;not null;uniqueIndex" json:"slug"`
	ProcessNumber *string `gorm:"column:process_number;size:64" json:"processNumber"`
}

var ProjectSortable = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"slug":      "slug",
}

type ProjectInsert struct {
	SpaceID       string  `json:"spaceId" validate:"required,uuid"`
	OwnerID       string  `json:"ownerId" validate:"required,uuid"`
	Title         *string `json:"title" validate:"omitnil,max=191"`
	Description   *string `json:"description"`
	Slug          string  `json:"slug" validate:"required,slug,max=191"`
	ProcessNumber *string `json:"processNumber" validate:"omitnil,max=64"`
}

func (in *ProjectInsert) SetSpaceID(id string) { in.SpaceID = id }
func (in *ProjectInsert) SetOwnerID(id string) { in.OwnerID = id }

func (in ProjectInsert) ToEntity() *Project {
	return &Project{
		SpaceID:       in.SpaceID,
		OwnerID:       in.OwnerID,
		Title:         in.Title,
		Description:   in.Description,
		Slug:          in.Slug,
		ProcessNumber: blankToNil(in.ProcessNumber),
	}
}

type ProjectUpdate struct {
	ID            *string `json:"id" validate:"isdefault"`
	SpaceID       *string `json:"spaceId" validate:"isdefault"`
	OwnerID       *string `json:"ownerId" validate:"omitnil,uuid"`
	Title         *string `json:"title" validate:"omitnil,max=191"`
	Description   *string `json:"description"`
	Slug          *string `json:"slug" validate:"omitnil,slug,max=191"`
	ProcessNumber *string `json:"processNumber" validate:"omitnil,max=64"`
}

func (in ProjectUpdate) Changes() map[string]any {
	m := map[string]any{}
	set(m, "owner_id", in.OwnerID)
	set(m, "title", in.Title)
	set(m, "description", in.Description)
	set(m, "slug", in.Slug)
	if in.ProcessNumber != nil {
		m["process_number"] = blankToNil(in.ProcessNumber)
	}
	return m
}
