package postgres

import (
	"database/sql"
	"errors"
	"time"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Timestamp columns store unix milliseconds so event ordering survives
// sub-second captures.

func timeToUnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}

func unixMilliToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
