package toast

import "errors"

var (
	// ErrPresetNotFound is returned when publishing a preset name that was never loaded.
	ErrPresetNotFound = errors.New("toast preset not found")

	// ErrInvalidPresets is returned when a presets document cannot be decoded.
	ErrInvalidPresets = errors.New("invalid toast presets")

	// ErrActionFailed wraps an error or panic from Action.OnClick.
	ErrActionFailed = errors.New("toast action failed")

	// ErrEngineClosed is returned by operations that report errors once Close has run.
	ErrEngineClosed = errors.New("toast engine is closed")
)
