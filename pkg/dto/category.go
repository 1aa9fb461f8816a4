package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// CategoryCreate is the payload for creating a category.
type CategoryCreate struct {
	Name     string     `json:"name" validate:"required,min=1,max=100"`
	Color    string     `json:"color" validate:"omitempty,hexcolor"`
	Type     string     `json:"type" validate:"required,oneof=income expense"`
	ParentID *uuid.UUID `json:"parentId"`
}

// CategoryUpdate carries optional field updates. Reparenting is checked for
// cycles before it is applied.
type CategoryUpdate struct {
	Name     *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Color    *string    `json:"color" validate:"omitempty,hexcolor"`
	ParentID *uuid.UUID `json:"parentId"`
}

// CategoryMerge reassigns every transaction of the source category to the
// target, then deletes the source.
type CategoryMerge struct {
	TargetID uuid.UUID `json:"targetId" validate:"required"`
}

// CategoryRead is the response shape for categories.
type CategoryRead struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Type      string     `json:"type"`
	ParentID  *uuid.UUID `json:"parentId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CategoryToRead maps a domain category to its response shape.
func CategoryToRead(c *domain.Category) *CategoryRead {
	return &CategoryRead{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		Type:      string(c.Type),
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoriesToRead maps a slice of domain categories.
func CategoriesToRead(categories []*domain.Category) []*CategoryRead {
	out := make([]*CategoryRead, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryToRead(c))
	}
	return out
}

// TagCreate is the payload for creating a tag.
type TagCreate struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// TagUpdate carries optional tag field updates.
type TagUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// TagRead is the response shape for tags.
type TagRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagToRead maps a domain tag to its response shape.
func TagToRead(t *domain.Tag) *TagRead {
	return &TagRead{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}
}

// TagsToRead maps a slice of domain tags.
func TagsToRead(tags []*domain.Tag) []*TagRead {
	out := make([]*TagRead, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagToRead(t))
	}
	return out
}
