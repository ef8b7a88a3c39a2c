package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/arvo-app/arvo/internal/common"
	"github.com/arvo-app/arvo/internal/derive"
	"github.com/arvo-app/arvo/internal/models"
	"github.com/arvo-app/arvo/internal/services"
)

func (a *App) listNotes(ctx context.Context, userID string) ([]models.Note, error) {
	list, err := a.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return derive.SortNotesNewestFirst(list), nil
}

func printNoteLine(i int, n models.Note) {
	printlnFn(fmt.Sprintf("%3d. [%s] %s (%s)", i+1, n.Category, n.Title, n.CreatedAt.Format("2006-01-02")))
	if n.Content != "" {
		printlnFn("        " + n.Content)
	}
}

// Notes prints the user's notes, newest first.
func (a *App) Notes(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	list, err := a.listNotes(ctx, u.ID)
	if err != nil {
		printlnFn("Failed to load notes:", err.Error())
		return err
	}
	if len(list) == 0 {
		printlnFn("No notes yet. Try 'addnote'.")
		return nil
	}
	for i, n := range list {
		printNoteLine(i, n)
	}
	return nil
}

// AddNote interactively collects the note fields and stores it. The body is
// multiline, finished with an empty line.
func (a *App) AddNote(ctx context.Context) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (class, organization, personal, other)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		return err
	}

	n, err := a.notes.Add(ctx, services.AddNoteParams{
		UserID:   u.ID,
		Title:    title,
		Category: models.NoteCategory(category),
		Content:  content,
	})
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn(err.Error())
		} else {
			printlnFn("Failed to add note:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Added note %q", n.Title))
	return nil
}

// DelNote deletes the n-th listed note.
func (a *App) DelNote(ctx context.Context, arg string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 {
		printlnFn("Expected a note number, got:", arg)
		return fmt.Errorf("%w: bad index %q", common.ErrValidation, arg)
	}

	list, err := a.listNotes(ctx, u.ID)
	if err != nil {
		printlnFn("Failed to load notes:", err.Error())
		return err
	}
	if idx > len(list) {
		printlnFn(fmt.Sprintf("No note #%d (you have %d)", idx, len(list)))
		return fmt.Errorf("%w: index out of range", common.ErrValidation)
	}

	n := list[idx-1]
	if err := a.notes.Delete(ctx, n.ID); err != nil {
		printlnFn("Failed to delete note:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Deleted note %q", n.Title))
	return nil
}

// SearchNotes prints the notes matching the given term.
func (a *App) SearchNotes(ctx context.Context, term string) error {
	u, ok := a.requireUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	list, err := a.notes.Search(ctx, u.ID, term)
	if err != nil {
		printlnFn("Search failed:", err.Error())
		return err
	}
	if len(list) == 0 {
		printlnFn("No notes match", strconv.Quote(term))
		return nil
	}
	for i, n := range derive.SortNotesNewestFirst(list) {
		printNoteLine(i, n)
	}
	return nil
}
