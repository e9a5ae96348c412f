package generator

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidOptions marks a rejected GenerateOptions value.
var ErrInvalidOptions = errors.New("invalid generate options")

const (
	MinImagesPerScreen = 1
	MaxImagesPerScreen = 3
	DefaultImageSize   = "1024x1024"
)

var (
	Platforms  = []string{"Web", "Mobile"}
	ImageSizes = []string{"1024x1024", "1024x1536", "1365x768"}
)

// DefaultGenerateOptions matches the first entry of every option list.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Platform: DefaultPlatform, NPerScreen: MinImagesPerScreen, Size: DefaultImageSize}
}

// WithDefaults fills empty fields.
func (o GenerateOptions) WithDefaults() GenerateOptions {
	d := DefaultGenerateOptions()
	if o.Platform == "" {
		o.Platform = d.Platform
	}
	if o.NPerScreen == 0 {
		o.NPerScreen = d.NPerScreen
	}
	if o.Size == "" {
		o.Size = d.Size
	}
	return o
}

func (o GenerateOptions) Validate() error {
	if !slices.Contains(Platforms, o.Platform) {
		return fmt.Errorf("%w: platform %q, want one of %v", ErrInvalidOptions, o.Platform, Platforms)
	}
	if o.NPerScreen < MinImagesPerScreen || o.NPerScreen > MaxImagesPerScreen {
		return fmt.Errorf("%w: images per screen %d, want %d..%d", ErrInvalidOptions, o.NPerScreen, MinImagesPerScreen, MaxImagesPerScreen)
	}
	if !slices.Contains(ImageSizes, o.Size) {
		return fmt.Errorf("%w: size %q, want one of %v", ErrInvalidOptions, o.Size, ImageSizes)
	}
	return nil
}
