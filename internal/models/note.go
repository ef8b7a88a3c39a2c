package models

import "time"

// NoteCategory classifies a note.
type NoteCategory string

const (
	NoteCategoryClass        NoteCategory = "class"
	NoteCategoryOrganization NoteCategory = "organization"
	NoteCategoryPersonal     NoteCategory = "personal"
	NoteCategoryOther        NoteCategory = "other"
)

// Valid reports whether c is one of the defined note categories.
func (c NoteCategory) Valid() bool {
	switch c {
	case NoteCategoryClass, NoteCategoryOrganization, NoteCategoryPersonal, NoteCategoryOther:
		return true
	}
	return false
}

// Note is a free-form text record owned by a user.
type Note struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Title     string       `json:"title"`
	Category  NoteCategory `json:"category"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NotePatch carries a partial note update. Nil fields keep the stored value.
type NotePatch struct {
	Title    *string
	Category *NoteCategory
	Content  *string
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}
