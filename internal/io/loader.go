// Image loading and saving through OpenCV codecs
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// ErrUnsupportedFormat is returned for file extensions outside SupportedExtensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedExtensions lists the raster formats offered in the file dialogs.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

const (
	DefaultOutputDir = "outputs"
	DefaultSaveName  = "edited_output.png"
	defaultExtension = ".png"
)

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes path as a 3-channel BGR image.
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !IsSupported(path) {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("unable to read the image %s, please choose a common format (jpg/png/bmp, etc.)", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// SaveImage encodes mat to path; the format follows the file extension.
func (il *ImageLoader) SaveImage(mat gocv.Mat, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !IsSupported(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to save the image to %s, please check the path or permissions", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

// IsSupported reports whether path has one of SupportedExtensions.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

// WithDefaultExtension appends .png to paths that have no extension.
func WithDefaultExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + defaultExtension
	}
	return path
}

// EnsureOutputDir creates dir (and parents) if it does not exist yet.
func EnsureOutputDir(dir string) error {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// DefaultSavePath returns the suggested save location inside dir.
func DefaultSavePath(dir string) string {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return filepath.Join(dir, DefaultSaveName)
}

// FormatName returns the upper-case format name for path, e.g. "PNG".
func FormatName(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "":
		return "unknown"
	case "jpg":
		return "JPEG"
	case "tif":
		return "TIFF"
	}
	return strings.ToUpper(ext)
}
