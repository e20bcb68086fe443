// Package util holds the thin I/O collaborators around the verification
// core: screenshot discovery, image decoding, motion-frame loading and file
// checksums. Nothing in here makes a pass/fail decision.
package util

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/decantra/bgverify/images"
)

// ImageFile is one discovered screenshot with its decoded pixel data.
type ImageFile struct {
	// Path is the location the image was read from.
	Path string
	// Buffer is the decoded pixel data.
	Buffer *images.PixelBuffer
}

var levelRe = regexp.MustCompile(`(?i)level-(\d+)`)

// supported decode extensions; decoders for all of these are registered via
// the blank imports above.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".webp": true,
}

// Decode converts raw image bytes into a pixel buffer.
func Decode(data []byte) (*images.PixelBuffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return images.FromImage(img), nil
}

// LoadImage reads and decodes one screenshot.
func LoadImage(path string) (*images.PixelBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	buf, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return buf, nil
}

// FindImages lists the image files in a directory, sorted by name.
func FindImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ParseLevelNumber extracts the embedded level index from a screenshot
// filename like "screenshot-03-level-01.png".
func ParseLevelNumber(path string) (int, bool) {
	match := levelRe.FindStringSubmatch(filepath.Base(path))
	if match == nil {
		return 0, false
	}
	lvl, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return lvl, true
}

// FindLevelImages maps level numbers to screenshot paths for every
// level-tagged file in dir. When several files share a level number the
// lexicographically last one wins, matching the sorted discovery order.
func FindLevelImages(dir string) (map[int]string, error) {
	paths, err := FindImages(dir)
	if err != nil {
		return nil, err
	}
	levels := make(map[int]string)
	for _, path := range paths {
		if lvl, ok := ParseLevelNumber(path); ok {
			levels[lvl] = path
		}
	}
	return levels, nil
}

// motionFramePrefix is the filename convention of animation captures:
// frame-<n>.png, ordered by n.
const motionFramePrefix = "frame-"

// FindMotionFrames lists the motion captures in dir ordered by frame
// number. Files that do not follow the frame-<n> convention are ignored.
func FindMotionFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read motion directory %s", dir)
	}
	type frame struct {
		path string
		n    int
	}
	var frames []frame
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, motionFramePrefix) {
			continue
		}
		ext := filepath.Ext(name)
		if !imageExtensions[strings.ToLower(ext)] {
			continue
		}
		n, convErr := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, motionFramePrefix), ext))
		if convErr != nil {
			continue
		}
		frames = append(frames, frame{path: filepath.Join(dir, name), n: n})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].n < frames[j].n })
	paths := make([]string, len(frames))
	for i, f := range frames {
		paths[i] = f.path
	}
	return paths, nil
}

// PickMotionDir probes the conventional motion-capture locations around a
// screenshot directory and returns the first one holding at least minFrames
// frames. preferred, when non-empty, is tried first.
func PickMotionDir(baseDir, preferred string, minFrames int) (string, bool) {
	candidates := []string{preferred,
		filepath.Join(baseDir, "motion"),
		filepath.Join(filepath.Dir(baseDir), "motion"),
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err != nil || !info.IsDir() {
			continue
		}
		frames, err := FindMotionFrames(candidate)
		if err == nil && len(frames) >= minFrames {
			return candidate, true
		}
	}
	return "", false
}

// LoadMotionFrames decodes the ordered motion captures in dir.
func LoadMotionFrames(dir string) ([]*images.PixelBuffer, error) {
	paths, err := FindMotionFrames(dir)
	if err != nil {
		return nil, err
	}
	frames := make([]*images.PixelBuffer, 0, len(paths))
	for _, path := range paths {
		buf, loadErr := LoadImage(path)
		if loadErr != nil {
			return nil, loadErr
		}
		frames = append(frames, buf)
	}
	return frames, nil
}

// Checksum returns the hex SHA-256 of a file, for pinning exactly which
// captures a verification verdict was produced from.
func Checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
