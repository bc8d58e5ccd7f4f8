package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reading-tracker-backend/internal/domains/book"
)

type fakeRepo struct {
	books map[string]*book.Book
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: map[string]*book.Book{}}
}

func key(userID, bookID string) string { return userID + "/" + bookID }

func (r *fakeRepo) Create(_ context.Context, b *book.Book) error {
	cp := *b
	r.books[key(b.UserID, b.BookID)] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, userID, bookID string) (*book.Book, error) {
	b, ok := r.books[key(userID, bookID)]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ExistsByTitleAuthor(_ context.Context, userID, title, author string) (bool, error) {
	for _, b := range r.books {
		if b.UserID == userID && b.Title == title && b.Author == author {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Update(_ context.Context, b *book.Book) error {
	if _, ok := r.books[key(b.UserID, b.BookID)]; !ok {
		return book.ErrBookNotFound
	}
	cp := *b
	r.books[key(b.UserID, b.BookID)] = &cp
	return nil
}

func (r *fakeRepo) UpdateProgress(ctx context.Context, b *book.Book) error {
	return r.Update(ctx, b)
}

func (r *fakeRepo) SetArchived(_ context.Context, userID, bookID string, archived bool) error {
	b, ok := r.books[key(userID, bookID)]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Archived = archived
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, userID, bookID string) (bool, error) {
	if _, ok := r.books[key(userID, bookID)]; !ok {
		return false, nil
	}
	delete(r.books, key(userID, bookID))
	return true, nil
}

func (r *fakeRepo) Search(_ context.Context, userID, keyword string) ([]book.Book, error) {
	out := []book.Book{}
	for _, b := range r.books {
		if b.UserID != userID {
			continue
		}
		if strings.Contains(b.Title, keyword) || strings.Contains(b.Author, keyword) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Filter(_ context.Context, userID string, f book.Filter) ([]book.Book, error) {
	out := []book.Book{}
	for _, b := range r.books {
		if b.UserID != userID {
			continue
		}
		if f.Genre != "" && b.Genre != f.Genre {
			continue
		}
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) History(_ context.Context, userID string) ([]book.Book, error) {
	out := []book.Book{}
	for _, b := range r.books {
		if b.UserID == userID && !b.Archived {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) ListOverdue(_ context.Context, today string) ([]book.Book, error) {
	out := []book.Book{}
	for _, b := range r.books {
		if b.Archived || b.Status == book.StatusCompleted || b.Deadline == nil {
			continue
		}
		if *b.Deadline < today {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeIDGen struct{ next int }

func (g *fakeIDGen) GenerateBookID(context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("B%d", 1000+g.next), nil
}

func newTestService() (book.Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewBookService(repo, &fakeIDGen{}), repo
}

func addBook(t *testing.T, svc book.Service, req book.AddBookRequest) *book.Book {
	t.Helper()
	b, err := svc.AddBook(context.Background(), "U1001", req)
	require.NoError(t, err)
	return b
}

func TestAddBookDerivesProgressAndTags(t *testing.T) {
	svc, _ := newTestService()

	b := addBook(t, svc, book.AddBookRequest{
		Title:      "Dune",
		Author:     "Frank Herbert",
		Genre:      "sci-fi",
		Tags:       "classic, desert",
		Status:     "reading",
		TotalPages: 400,
		PagesRead:  100,
	})

	assert.Equal(t, "U1001", b.UserID)
	assert.NotEmpty(t, b.BookID)
	assert.Equal(t, []string{"classic", "desert"}, b.Tags)
	assert.Equal(t, "25", b.ProgressPercent.String())
	assert.False(t, b.Archived)
}

func TestAddBookWithoutPagesHasZeroProgress(t *testing.T) {
	svc, _ := newTestService()

	b := addBook(t, svc, book.AddBookRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
		Status: "to-read",
	})

	assert.True(t, b.ProgressPercent.IsZero())
}

func TestAddBookRejectsPagesReadBeyondTotal(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddBook(context.Background(), "U1001", book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "reading",
		TotalPages: 100, PagesRead: 150,
	})
	assert.ErrorIs(t, err, book.ErrInvalidPageCount)
}

func TestAddBookCompletedSnapsPagesToTotal(t *testing.T) {
	svc, _ := newTestService()

	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "completed",
		TotalPages: 300,
	})

	assert.Equal(t, 300, b.PagesRead)
	assert.Equal(t, "100", b.ProgressPercent.String())
}

func TestAddBookToReadResetsPages(t *testing.T) {
	svc, _ := newTestService()

	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "to-read",
		TotalPages: 300, PagesRead: 120,
	})

	assert.Equal(t, 0, b.PagesRead)
	assert.True(t, b.ProgressPercent.IsZero())
}

func TestAddBookRejectsDuplicateTitleAuthor(t *testing.T) {
	svc, _ := newTestService()

	addBook(t, svc, book.AddBookRequest{Title: "Dune", Author: "Frank Herbert", Status: "to-read"})

	_, err := svc.AddBook(context.Background(), "U1001", book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "reading",
	})
	assert.ErrorIs(t, err, book.ErrDuplicateBook)
}

func TestEditBookAppliesUpdatesAtomically(t *testing.T) {
	svc, repo := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "reading",
		TotalPages: 400, PagesRead: 100,
	})

	// Second update is invalid, so the first must not be persisted.
	_, err := svc.EditBook(context.Background(), "U1001", b.BookID, []book.FieldUpdate{
		book.TitleUpdate{Value: "Changed"},
		book.TotalPagesUpdate{Value: 50},
	})
	assert.ErrorIs(t, err, book.ErrInvalidPageCount)

	stored, err := repo.FindByID(context.Background(), "U1001", b.BookID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Title)
}

func TestEditBookRequiresAtLeastOneField(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.EditBook(context.Background(), "U1001", "B1001", nil)
	assert.ErrorIs(t, err, book.ErrNoFieldsToUpdate)
}

func TestUpdateProgressCompletedSnapsToTotal(t *testing.T) {
	svc, repo := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "reading",
		TotalPages: 300, PagesRead: 120,
	})

	progress, err := svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "100", progress.String())

	stored, _ := repo.FindByID(context.Background(), "U1001", b.BookID)
	assert.Equal(t, 300, stored.PagesRead)
	assert.Equal(t, book.StatusCompleted, stored.Status)
}

func TestUpdateProgressToReadResetsPages(t *testing.T) {
	svc, repo := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "reading",
		TotalPages: 300, PagesRead: 120,
	})

	progress, err := svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "to-read"})
	require.NoError(t, err)
	assert.True(t, progress.IsZero())

	stored, _ := repo.FindByID(context.Background(), "U1001", b.BookID)
	assert.Equal(t, 0, stored.PagesRead)
}

func TestUpdateProgressReadingTakesCallerPages(t *testing.T) {
	svc, _ := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "to-read", TotalPages: 300,
	})

	pages := 150
	progress, err := svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "reading", PagesRead: &pages})
	require.NoError(t, err)
	assert.Equal(t, "50", progress.String())
}

func TestUpdateProgressReadingValidatesPageBounds(t *testing.T) {
	svc, _ := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "to-read", TotalPages: 300,
	})

	over := 301
	_, err := svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "reading", PagesRead: &over})
	assert.ErrorIs(t, err, book.ErrInvalidPageCount)

	negative := -1
	_, err = svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "reading", PagesRead: &negative})
	assert.ErrorIs(t, err, book.ErrInvalidPageCount)

	_, err = svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "reading"})
	assert.ErrorIs(t, err, book.ErrInvalidPageCount)
}

func TestUpdateProgressRequiresTotalPages(t *testing.T) {
	svc, _ := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "to-read",
	})

	_, err := svc.UpdateProgress(context.Background(), "U1001", b.BookID,
		book.UpdateProgressRequest{Status: "completed"})
	assert.ErrorIs(t, err, book.ErrMissingPageCount)
}

func TestArchiveOnlyCompletedBooks(t *testing.T) {
	svc, _ := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "reading",
		TotalPages: 300, PagesRead: 100,
	})

	err := svc.Archive(context.Background(), "U1001", b.BookID)
	assert.ErrorIs(t, err, book.ErrNotCompleted)
}

func TestArchiveTwiceIsReportedDistinctly(t *testing.T) {
	svc, _ := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "completed",
		TotalPages: 300, PagesRead: 300,
	})

	require.NoError(t, svc.Archive(context.Background(), "U1001", b.BookID))

	err := svc.Archive(context.Background(), "U1001", b.BookID)
	assert.ErrorIs(t, err, book.ErrAlreadyArchived)
}

func TestUnarchiveRequiresArchivedBook(t *testing.T) {
	svc, _ := newTestService()
	b := addBook(t, svc, book.AddBookRequest{
		Title: "Dune", Author: "Frank Herbert", Status: "completed",
		TotalPages: 300, PagesRead: 300,
	})

	err := svc.Unarchive(context.Background(), "U1001", b.BookID)
	assert.ErrorIs(t, err, book.ErrNotArchived)

	require.NoError(t, svc.Archive(context.Background(), "U1001", b.BookID))
	require.NoError(t, svc.Unarchive(context.Background(), "U1001", b.BookID))
}

func TestDeleteMissingBookIsNoOp(t *testing.T) {
	svc, _ := newTestService()

	found, err := svc.DeleteBook(context.Background(), "U1001", "B9999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHistoryExcludesArchivedNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo, &fakeIDGen{})
	now := time.Now().UTC()

	old := &book.Book{UserID: "U1001", BookID: "B1", Title: "Old", Author: "A",
		Status: book.StatusCompleted, CreatedAt: now.Add(-2 * time.Hour)}
	newer := &book.Book{UserID: "U1001", BookID: "B2", Title: "New", Author: "A",
		Status: book.StatusReading, CreatedAt: now.Add(-1 * time.Hour)}
	archived := &book.Book{UserID: "U1001", BookID: "B3", Title: "Hidden", Author: "A",
		Status: book.StatusCompleted, Archived: true, CreatedAt: now}

	require.NoError(t, repo.Create(context.Background(), old))
	require.NoError(t, repo.Create(context.Background(), newer))
	require.NoError(t, repo.Create(context.Background(), archived))

	history, err := svc.GetHistory(context.Background(), "U1001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "New", history[0].Title)
	assert.Equal(t, "Old", history[1].Title)
}
