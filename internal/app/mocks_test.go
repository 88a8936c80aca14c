package app

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
)

type mockEntry struct {
	path      string
	isDir     bool
	size      int64
	createdAt time.Time
}

type mockFS struct {
	entries map[string]*mockEntry
}

func newMockFS(entries ...mockEntry) *mockFS {
	m := &mockFS{entries: map[string]*mockEntry{}}
	for i := range entries {
		entry := entries[i]
		m.entries[entry.path] = &entry
	}
	return m
}

func (m *mockFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	paths := make([]string, 0, len(m.entries))
	for path := range m.entries {
		if path == root || strings.HasPrefix(path, root+"/") {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	for _, path := range paths {
		entry := m.entries[path]
		dirEntry := mockDirEntry{name: filepath.Base(path), isDir: entry.isDir}
		if err := fn(path, dirEntry, nil); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockFS) Stat(path string) (fs.FileInfo, error) {
	entry, ok := m.entries[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return mockFileInfo{name: filepath.Base(path), size: entry.size, isDir: entry.isDir}, nil
}

func (m *mockFS) CreatedAt(path string) (time.Time, error) {
	entry, ok := m.entries[path]
	if !ok {
		return time.Time{}, fs.ErrNotExist
	}
	return entry.createdAt, nil
}

type mockDirEntry struct {
	name  string
	isDir bool
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode          { return m.mode() }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

func (m mockDirEntry) mode() fs.FileMode {
	if m.isDir {
		return fs.ModeDir
	}
	return 0
}

type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return m.size }
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.isDir }
func (m mockFileInfo) Sys() interface{}   { return nil }

func (m mockFileInfo) Mode() fs.FileMode {
	if m.isDir {
		return fs.ModeDir
	}
	return 0o644
}

// mockImage is what the mock codec "stores" for a path.
type mockImage struct {
	width, height int
	progressive   bool
	corrupt       bool
}

// mockCodec implements Codec and Inspector over an in-memory set of images
// and keeps mockFS sizes in sync with encodes.
type mockCodec struct {
	fs        *mockFS
	images    map[string]*mockImage
	decodes   map[string]int
	encodes   map[string]int
	encoded   map[string]image.Rectangle
	lastOpts  domain.EncodeOptions
	encodeErr error
}

func newMockCodec(fsys *mockFS) *mockCodec {
	return &mockCodec{
		fs:      fsys,
		images:  map[string]*mockImage{},
		decodes: map[string]int{},
		encodes: map[string]int{},
		encoded: map[string]image.Rectangle{},
	}
}

func (m *mockCodec) IsProgressive(ctx context.Context, path string) (bool, error) {
	img, ok := m.images[path]
	if !ok || img.corrupt {
		return false, appErrors.Wrap(appErrors.UnidentifiableImage, "inspect", path, errors.New("not a JPEG"))
	}
	return img.progressive, nil
}

func (m *mockCodec) Decode(ctx context.Context, path string) (image.Image, error) {
	m.decodes[path]++
	img, ok := m.images[path]
	if !ok || img.corrupt {
		return nil, appErrors.Wrap(appErrors.UnidentifiableImage, "decode", path, errors.New("not a JPEG"))
	}
	return image.NewYCbCr(image.Rect(0, 0, img.width, img.height), image.YCbCrSubsampleRatio420), nil
}

func (m *mockCodec) Encode(ctx context.Context, path string, img image.Image, opts domain.EncodeOptions) error {
	if m.encodeErr != nil {
		return m.encodeErr
	}
	m.encodes[path]++
	m.lastOpts = opts
	bounds := img.Bounds()
	m.encoded[path] = bounds
	m.images[path] = &mockImage{width: bounds.Dx(), height: bounds.Dy(), progressive: opts.Progressive}
	if entry, ok := m.fs.entries[path]; ok {
		entry.size = entry.size / 2
	}
	return nil
}

type mockExif struct {
	orientation map[string]int
}

func (m mockExif) Orientation(ctx context.Context, path string) (int, error) {
	if o, ok := m.orientation[path]; ok {
		return o, nil
	}
	return 0, errors.New("no exif")
}

type recordingReporter struct {
	total    int
	outcomes []domain.Outcome
	finished *domain.RunSummary
}

func (r *recordingReporter) Start(total int) {
	r.total = total
}

func (r *recordingReporter) Report(outcome domain.Outcome) {
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingReporter) Finish(summary domain.RunSummary) {
	r.finished = &summary
}
