package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"reading-tracker-backend/internal/domains/book"
	"reading-tracker-backend/internal/shared/response"
	"reading-tracker-backend/internal/shared/utils"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// bindIDs validates the path identifiers before any storage access.
func (h *BookHandler) bindIDs(c *gin.Context, needBook bool) (string, string, bool) {
	userID := c.Param("userID")
	if !utils.IsValidUserID(userID) {
		response.BadRequest(c, "user ID must look like U123")
		return "", "", false
	}

	bookID := ""
	if needBook {
		bookID = c.Param("bookID")
		if !utils.IsValidBookID(bookID) {
			response.BadRequest(c, "book ID must look like B1001")
			return "", "", false
		}
	}
	return userID, bookID, true
}

// AddBook handles POST /users/:userID/books
func (h *BookHandler) AddBook(c *gin.Context) {
	userID, _, ok := h.bindIDs(c, false)
	if !ok {
		return
	}

	var req book.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	b, err := h.service.AddBook(c.Request.Context(), userID, req)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, b)
}

// GetBook handles GET /users/:userID/books/:bookID
func (h *BookHandler) GetBook(c *gin.Context) {
	userID, bookID, ok := h.bindIDs(c, true)
	if !ok {
		return
	}

	b, err := h.service.GetBook(c.Request.Context(), userID, bookID)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, b)
}

// EditBook handles PATCH /users/:userID/books/:bookID
func (h *BookHandler) EditBook(c *gin.Context) {
	userID, bookID, ok := h.bindIDs(c, true)
	if !ok {
		return
	}

	var req book.EditBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.EditBook(c.Request.Context(), userID, bookID, req.Updates())
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, b)
}

// DeleteBook handles DELETE /users/:userID/books/:bookID. Deleting a
// missing book succeeds with deleted=false.
func (h *BookHandler) DeleteBook(c *gin.Context) {
	userID, bookID, ok := h.bindIDs(c, true)
	if !ok {
		return
	}

	found, err := h.service.DeleteBook(c.Request.Context(), userID, bookID)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": found})
}

// SearchBooks handles GET /users/:userID/books/search?keyword=
func (h *BookHandler) SearchBooks(c *gin.Context) {
	userID, _, ok := h.bindIDs(c, false)
	if !ok {
		return
	}

	keyword := c.Query("keyword")
	if strings.TrimSpace(keyword) == "" {
		response.BadRequest(c, "keyword is required")
		return
	}

	books, err := h.service.SearchBooks(c.Request.Context(), userID, keyword)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// ListBooks handles GET /users/:userID/books with optional genre, rating
// and status filters combined with AND.
func (h *BookHandler) ListBooks(c *gin.Context) {
	userID, _, ok := h.bindIDs(c, false)
	if !ok {
		return
	}

	f := book.Filter{
		Genre:  c.Query("genre"),
		Status: c.Query("status"),
	}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "rating must be a number")
			return
		}
		f.Rating = &rating
	}
	if f.Status != "" && !book.Status(f.Status).IsValid() {
		response.BadRequest(c, "status must be to-read, reading or completed")
		return
	}

	books, err := h.service.FilterBooks(c.Request.Context(), userID, f)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetHistory handles GET /users/:userID/books/history
func (h *BookHandler) GetHistory(c *gin.Context) {
	userID, _, ok := h.bindIDs(c, false)
	if !ok {
		return
	}

	books, err := h.service.GetHistory(c.Request.Context(), userID)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// UpdateProgress handles PUT /users/:userID/books/:bookID/progress
func (h *BookHandler) UpdateProgress(c *gin.Context) {
	userID, bookID, ok := h.bindIDs(c, true)
	if !ok {
		return
	}

	var req book.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	progress, err := h.service.UpdateProgress(c.Request.Context(), userID, bookID, req)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress_percent": progress})
}

// Archive handles POST /users/:userID/books/:bookID/archive. Archiving
// an already archived book is reported as a success with a flag rather
// than an error.
func (h *BookHandler) Archive(c *gin.Context) {
	userID, bookID, ok := h.bindIDs(c, true)
	if !ok {
		return
	}

	err := h.service.Archive(c.Request.Context(), userID, bookID)
	if err == book.ErrAlreadyArchived {
		response.Success(c, http.StatusOK, gin.H{"archived": true, "already_archived": true})
		return
	}
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"archived": true})
}

// Unarchive handles POST /users/:userID/books/:bookID/unarchive
func (h *BookHandler) Unarchive(c *gin.Context) {
	userID, bookID, ok := h.bindIDs(c, true)
	if !ok {
		return
	}

	err := h.service.Unarchive(c.Request.Context(), userID, bookID)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"archived": false})
}
