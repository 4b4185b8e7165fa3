package vigil

import "github.com/zoobzio/capitan"

// Field keys for vigil events.
var (
	// KeyTag is the observer's registry tag.
	KeyTag = capitan.NewStringKey("tag")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyHistoryLength is the number of prior snapshots on a change event.
	KeyHistoryLength = capitan.NewIntKey("history_length")

	// KeyCount is the number of entries involved in a registry operation.
	KeyCount = capitan.NewIntKey("count")

	// KeyDebounce is a driver's configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyInterval is a ticker driver's configured interval.
	KeyInterval = capitan.NewDurationKey("interval")

	// KeyPath is a watched file path.
	KeyPath = capitan.NewStringKey("path")
)
