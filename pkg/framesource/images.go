package framesource

import (
	"fmt"
	"image"

	"github.com/user/framemux/pkg/pixel"
	"github.com/user/framemux/pkg/ports"
)

// ImageExtensions are the file extensions read by ImageSequence.
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

// ImageSequence reads one frame per image file of a directory in file name
// order. Images whose size differs from the target are scaled to fit.
type ImageSequence struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	paths    []string
}

// NewImageSequence lists the images in dir.
func NewImageSequence(fs ports.FileSystem, renderer ports.Renderer, dir string) (*ImageSequence, error) {
	paths, err := fs.ListFiles(dir, ImageExtensions...)
	if err != nil {
		return nil, fmt.Errorf("list images in %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	return &ImageSequence{fs: fs, renderer: renderer, paths: paths}, nil
}

// Len returns the number of images.
func (s *ImageSequence) Len() int { return len(s.paths) }

// Paths returns the image files in frame order.
func (s *ImageSequence) Paths() []string { return s.paths }

// Size returns the dimensions of the first image.
func (s *ImageSequence) Size() (int, int, error) {
	img, err := s.decode(0)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Frame decodes image index into dst.
func (s *ImageSequence) Frame(index int, dst *pixel.Pixmap) error {
	if err := checkIndex(s, index); err != nil {
		return err
	}

	img, err := s.decode(index)
	if err != nil {
		return err
	}
	if b := img.Bounds(); b.Dx() != dst.Width() || b.Dy() != dst.Height() {
		img = s.renderer.ResizeImage(img, dst.Width(), dst.Height())
	}
	dst.CopyFrom(img)
	return nil
}

func (s *ImageSequence) decode(index int) (image.Image, error) {
	path := s.paths[index]
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

var _ Source = (*ImageSequence)(nil)
