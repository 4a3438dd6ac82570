package domain

import "time"

// TimeLayout is the stored timestamp format. It is fixed width in UTC, so
// timestamps sort lexically in time order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

func Now() string { return Timestamp(time.Now()) }
