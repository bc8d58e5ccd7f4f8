package idgen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// BookCounterName is the single counter record backing book ID allocation.
const BookCounterName = "book_id_counter"

const (
	userIDPrefix = "U"
	bookIDPrefix = "B"

	// First issued suffix is base+1 (U1001 / B1001).
	idBase = 1000
)

// CounterStore is the atomic-increment service over the counters table.
type CounterStore interface {
	// Increment atomically bumps the named counter and returns the new
	// value. found = false means the counter record does not exist yet.
	Increment(ctx context.Context, name string) (int64, bool, error)

	// InitIfAbsent creates the counter with an initial value unless it
	// already exists. created = false means another writer won the race.
	InitIfAbsent(ctx context.Context, name string, value int64) (bool, error)
}

// IDScanner lists existing IDs for the scan-based allocation paths.
type IDScanner interface {
	UserIDs(ctx context.Context) ([]string, error)
	BookIDs(ctx context.Context) ([]string, error)
}

// Allocator issues user and book IDs.
type Allocator struct {
	counters CounterStore
	scanner  IDScanner
	now      func() time.Time
}

func New(counters CounterStore, scanner IDScanner) *Allocator {
	return &Allocator{
		counters: counters,
		scanner:  scanner,
		now:      time.Now,
	}
}

// GenerateUserID scans existing user IDs and returns U{max+1}.
//
// Known weakness: the scan and the later insert are not atomic, so two
// concurrent registrations can be issued the same ID. Registration volume
// is assumed low enough that this is accepted rather than guaranteed safe.
func (a *Allocator) GenerateUserID(ctx context.Context) (string, error) {
	ids, err := a.scanner.UserIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("scan user ids: %w", err)
	}
	return fmt.Sprintf("%s%d", userIDPrefix, maxSuffix(ids, userIDPrefix)+1), nil
}

// GenerateBookID returns B{n} from the shared atomic counter, initializing
// it to 1001 on first use. If the counter storage is unreachable it falls
// back to scanning existing book IDs, and as a last resort derives an ID
// from the clock. Callers always receive an ID while at least one backend
// in the chain is reachable.
func (a *Allocator) GenerateBookID(ctx context.Context) (string, error) {
	value, found, err := a.counters.Increment(ctx, BookCounterName)
	if err != nil {
		log.Warn().Err(err).Msg("Book ID counter unreachable, falling back to scan")
		return a.bookIDFromScan(ctx), nil
	}
	if found {
		return fmt.Sprintf("%s%d", bookIDPrefix, value), nil
	}

	// Counter record missing: create it, losing the race means another
	// writer just initialized it, so retry the increment once.
	created, err := a.counters.InitIfAbsent(ctx, BookCounterName, idBase+1)
	if err != nil {
		log.Warn().Err(err).Msg("Book ID counter init failed, falling back to scan")
		return a.bookIDFromScan(ctx), nil
	}
	if created {
		return fmt.Sprintf("%s%d", bookIDPrefix, idBase+1), nil
	}

	value, found, err = a.counters.Increment(ctx, BookCounterName)
	if err != nil || !found {
		log.Warn().Err(err).Msg("Book ID counter retry failed, falling back to scan")
		return a.bookIDFromScan(ctx), nil
	}
	return fmt.Sprintf("%s%d", bookIDPrefix, value), nil
}

func (a *Allocator) bookIDFromScan(ctx context.Context) string {
	ids, err := a.scanner.BookIDs(ctx)
	if err != nil {
		// Last resort: timestamp-derived ID. Trades strict uniqueness
		// for availability.
		log.Error().Err(err).Msg("Book ID scan failed, issuing timestamp-derived ID")
		return fmt.Sprintf("%s%d", bookIDPrefix, a.now().Unix())
	}
	return fmt.Sprintf("%s%d", bookIDPrefix, maxSuffix(ids, bookIDPrefix)+1)
}

// maxSuffix returns the largest numeric suffix among prefixed IDs,
// or idBase when none parse.
func maxSuffix(ids []string, prefix string) int64 {
	max := int64(idBase)
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.ParseInt(id[len(prefix):], 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
