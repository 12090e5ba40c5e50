package widget

import "errors"

var (
	// ErrUnknownWidget is returned when an event names no live widget.
	ErrUnknownWidget = errors.New("unknown widget")

	// ErrDuplicateWidget is returned when two widget folders declare the same name.
	ErrDuplicateWidget = errors.New("duplicate widget name")

	// ErrInvalidMetadata is returned for a missing or malformed metadata.json.
	ErrInvalidMetadata = errors.New("invalid widget metadata")

	// ErrMissingContent is returned when a widget folder has no index.html.
	ErrMissingContent = errors.New("missing widget content")

	// ErrInvalidState is returned for a malformed enabled.json or positions.json.
	ErrInvalidState = errors.New("invalid persisted state")

	// ErrClosed is returned for events handled after shutdown.
	ErrClosed = errors.New("widget manager is shut down")
)
