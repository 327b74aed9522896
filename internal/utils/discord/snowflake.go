package discord

import (
	"strconv"
	"time"
)

// Discord snowflake epoch: first second of 2015, in milliseconds.
const snowflakeEpochMillis int64 = 1420070400000

// CreationTime decodes the creation timestamp embedded in a snowflake ID.
// The top 42 bits of the ID are milliseconds since the provider epoch.
func CreationTime(id string) (time.Time, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	millis := (n >> 22) + snowflakeEpochMillis
	return time.UnixMilli(millis).UTC(), nil
}
