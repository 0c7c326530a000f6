package softrast

import (
	"errors"

	"github.com/gogpu/softrast/internal/image"
)

// Errors returned by New and Init.
var (
	// ErrUnsupportedFormat is returned for output formats other than
	// RGBA8Unorm and BGRA8Unorm.
	ErrUnsupportedFormat = image.ErrUnsupportedFormat

	// ErrInvalidScale is returned for render scales outside 1 to 4.
	ErrInvalidScale = errors.New("softrast: render scale must be between 1 and 4")

	// ErrClosed is returned by Init on a closed engine.
	ErrClosed = errors.New("softrast: engine closed")
)

// MaxScale is the largest supported render scale.
const MaxScale = 4
