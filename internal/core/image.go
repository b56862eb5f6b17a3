// Editing session: original, committed and current image slots
package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-editor/internal/io"
	"image-editor/internal/processor"
)

var (
	// ErrDecode wraps failures to read an image file.
	ErrDecode = errors.New("cannot decode image")
	// ErrEncode wraps failures to write an image file.
	ErrEncode = errors.New("cannot encode image")
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("there is no image loaded")
)

// Source selects which slot an action reads from.
type Source int

const (
	FromCommitted Source = iota
	FromCurrent
)

func (s Source) String() string {
	if s == FromCurrent {
		return "current"
	}
	return "committed"
}

// ImageMetadata contains image information
type ImageMetadata struct {
	Width    int
	Height   int
	Channels int
	Format   string
}

// Session owns the three image buffers of one editing session. Mats passed
// in are cloned and Mats handed out are clones the caller has to Close.
type Session struct {
	mu        sync.RWMutex
	original  gocv.Mat
	committed gocv.Mat
	current   gocv.Mat
	hasImage  bool
	path      string
	metadata  ImageMetadata

	loader *io.ImageLoader
	logger *logrus.Logger
}

// NewSession creates an empty session.
func NewSession(loader *io.ImageLoader, logger *logrus.Logger) *Session {
	return &Session{
		original:  gocv.NewMat(),
		committed: gocv.NewMat(),
		current:   gocv.NewMat(),
		loader:    loader,
		logger:    logger,
	}
}

// Load decodes path and makes it the original, committed and current image.
// On failure the session keeps its previous state.
func (s *Session) Load(path string) error {
	mat, err := s.loader.LoadImage(path)
	if err != nil {
		mat.Close()
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer mat.Close()

	if err := ValidateImage(mat); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeAllUnsafe()
	s.original = mat.Clone()
	s.committed = mat.Clone()
	s.current = mat.Clone()
	s.hasImage = true
	s.path = path
	s.metadata = metadataOf(mat, path)

	s.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    s.metadata.Width,
		"height":   s.metadata.Height,
	}).Info("Session loaded image")

	return nil
}

// HasImage returns true if an image is loaded
func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasImage
}

// Reset restores committed and current from the original image.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return
	}

	s.replaceUnsafe(&s.committed, s.original)
	s.replaceUnsafe(&s.current, s.original)
	s.logger.Debug("Session reset to original")
}

// Commit replaces both the committed and the current image with mat. It does
// nothing while no image is loaded.
func (s *Session) Commit(mat gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return nil
	}
	if mat.Empty() {
		return fmt.Errorf("cannot commit empty image")
	}

	s.commitUnsafe(mat)
	return nil
}

// SetCurrent replaces only the current image, leaving the committed base alone.
func (s *Session) SetCurrent(mat gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return nil
	}
	if mat.Empty() {
		return fmt.Errorf("cannot set empty image")
	}

	s.replaceUnsafe(&s.current, mat)
	return nil
}

// Current returns a copy of the displayed image.
func (s *Session) Current() gocv.Mat {
	return s.get(&s.current)
}

// Committed returns a copy of the base used for slider adjustments.
func (s *Session) Committed() gocv.Mat {
	return s.get(&s.committed)
}

// Original returns a copy of the image as loaded.
func (s *Session) Original() gocv.Mat {
	return s.get(&s.original)
}

// Save writes the current image to path.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasImage {
		return ErrNoImage
	}

	if err := s.loader.SaveImage(s.current, path); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// Path returns the file the session was loaded from.
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Metadata describes the loaded image.
func (s *Session) Metadata() ImageMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

// CurrentSize returns the width and height of the current image.
func (s *Session) CurrentSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Cols(), s.current.Rows()
}

// ApplyDiscrete runs fn on the chosen slot and commits the result. If fn
// fails every buffer is left as it was.
func (s *Session) ApplyDiscrete(source Source, fn func(gocv.Mat) (gocv.Mat, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return ErrNoImage
	}

	input := s.committed
	if source == FromCurrent {
		input = s.current
	}

	start := time.Now()
	out, err := fn(input)
	if err != nil {
		out.Close()
		return err
	}
	defer out.Close()

	if err := ValidateImage(out); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}

	s.commitUnsafe(out)
	s.logger.WithFields(logrus.Fields{
		"source":   source,
		"width":    out.Cols(),
		"height":   out.Rows(),
		"duration": time.Since(start),
	}).Debug("Committed discrete action")
	return nil
}

// Preview recomputes the current image from the committed base.
func (s *Session) Preview(adj processor.Adjustments) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return ErrNoImage
	}

	if adj.IsIdentity() {
		s.replaceUnsafe(&s.current, s.committed)
		return nil
	}

	start := time.Now()
	out, err := adj.Apply(s.committed)
	if err != nil {
		out.Close()
		return fmt.Errorf("preview %s: %w", adj, err)
	}
	defer out.Close()

	s.replaceUnsafe(&s.current, out)
	s.logger.WithFields(logrus.Fields{
		"adjustments": adj.String(),
		"duration":    time.Since(start),
	}).Debug("Preview recomputed")
	return nil
}

// Close releases all resources
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeAllUnsafe()
	s.original = gocv.NewMat()
	s.committed = gocv.NewMat()
	s.current = gocv.NewMat()
	s.hasImage = false
	s.path = ""
	s.metadata = ImageMetadata{}
}

func (s *Session) get(slot *gocv.Mat) gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasImage || slot.Empty() {
		return gocv.NewMat()
	}
	return slot.Clone()
}

func (s *Session) commitUnsafe(mat gocv.Mat) {
	s.replaceUnsafe(&s.committed, mat)
	s.replaceUnsafe(&s.current, mat)
}

func (s *Session) replaceUnsafe(slot *gocv.Mat, mat gocv.Mat) {
	next := mat.Clone()
	slot.Close()
	*slot = next
}

func (s *Session) closeAllUnsafe() {
	s.original.Close()
	s.committed.Close()
	s.current.Close()
}

func metadataOf(mat gocv.Mat, path string) ImageMetadata {
	return ImageMetadata{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Format:   io.FormatName(path),
	}
}

// ValidateImage validates an OpenCV Mat for basic requirements
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("image is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	if mat.Channels() != 3 {
		return fmt.Errorf("unsupported channel count: %d", mat.Channels())
	}

	// Check for reasonable size limits (prevent memory issues)
	const maxDimension = 32768
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}
