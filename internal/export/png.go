package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PNG encodes a snapshot.
func PNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// DirSaver writes snapshots into a directory as PNG, plus a PDF copy when enabled.
type DirSaver struct {
	Dir string
	PDF bool

	now func() time.Time
}

func NewDirSaver(dir string, withPDF bool) *DirSaver {
	return &DirSaver{Dir: dir, PDF: withPDF, now: time.Now}
}

// Save writes img and returns the paths of the files it created.
func (s *DirSaver) Save(img image.Image) ([]string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save dir: %w", err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	base := fmt.Sprintf("doodle-%s-%s", now().Format("20060102-150405"), uuid.NewString()[:8])

	pngPath := filepath.Join(s.Dir, base+".png")
	if err := writeFile(pngPath, func(w io.Writer) error { return PNG(w, img) }); err != nil {
		return nil, err
	}
	paths := []string{pngPath}

	if s.PDF {
		pdfPath := filepath.Join(s.Dir, base+".pdf")
		if err := writeFile(pdfPath, func(w io.Writer) error { return PDF(w, img, base) }); err != nil {
			return paths, err
		}
		paths = append(paths, pdfPath)
	}

	log.Printf("[EXPORT] Saved %v", paths)
	return paths, nil
}

// writeFile creates path, runs enc on it and removes the file if anything fails.
func writeFile(path string, enc func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := enc(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
