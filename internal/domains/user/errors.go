package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/shared/response"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user ID is already registered")
	ErrInvalidUserID      = errors.New("user ID must be U followed by digits")
	ErrStorageUnavailable = errors.New("storage backend unavailable, please retry later")
)

var userErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrUserNotFound:       {http.StatusNotFound, "USER_NOT_FOUND", "The specified user does not exist"},
	ErrDuplicateUser:      {http.StatusConflict, "DUPLICATE_USER", "This user ID is already registered"},
	ErrInvalidUserID:      {http.StatusBadRequest, "INVALID_USER_ID", "User ID must look like U123"},
	ErrStorageUnavailable: {http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable, please retry later"},
}

// HandleUserError writes the mapped error response and reports whether
// err was non-nil.
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range userErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Unhandled user error")
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	return true
}
