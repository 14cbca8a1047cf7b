// Package resume stores and retrieves uploaded resume files behind a single
// reference codec. Three backends exist as configuration, not three
// pipelines: relative disk paths, absolute disk paths, and an inline
// base64 form for deployments without a writable filesystem.
//
// Every new reference is written as a tagged JSON union so retrieval never
// has to consult the configured mode; records created by earlier deployments
// (untagged inline JSON, or a bare filesystem path) are still decoded through
// back-compat fallbacks.
package resume

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/google/uuid"
)

// Mode selects the storage backend.
type Mode string

const (
	// ModeDisk writes files under the upload directory and stores the
	// relative path.
	ModeDisk Mode = "disk"
	// ModeDiskAbsolute writes the same files but stores an absolute path.
	ModeDiskAbsolute Mode = "disk-abs"
	// ModeInline stores filename, MIME type and base64 payload in the
	// reference itself; nothing touches the filesystem.
	ModeInline Mode = "inline"
)

// ParseMode maps a config string to a Mode, defaulting to disk.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeDiskAbsolute, ModeInline:
		return Mode(s)
	default:
		return ModeDisk
	}
}

// File is a resolved resume: original name, MIME type, raw bytes.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ref is the persisted tagged union.
type ref struct {
	Kind     string `json:"kind,omitempty"`
	Value    string `json:"value,omitempty"`
	Filename string `json:"filename,omitempty"`
	Mimetype string `json:"mimetype,omitempty"`
	Data     string `json:"data,omitempty"`
}

const (
	kindPath   = "path"
	kindInline = "inline"

	// defaultContentType covers legacy disk references that carry no MIME
	// type; historically every such upload was a PDF.
	defaultContentType = "application/pdf"
)

// Storage saves and resolves resume files for one configured mode. Resolve
// and Remove work on references of any mode, so records written under a
// previous deployment mode keep working.
type Storage struct {
	mode Mode
	dir  string
}

// NewStorage returns a Storage writing under dir in the given mode. The
// directory is created lazily on first save.
func NewStorage(mode Mode, dir string) *Storage {
	return &Storage{mode: mode, dir: dir}
}

// Save persists the file bytes and returns the opaque stored reference.
// Disk names are collision resistant: timestamp plus random suffix plus the
// original extension, so concurrent uploads never collide.
func (s *Storage) Save(filename, contentType string, data []byte) (string, error) {
	if s.mode == ModeInline {
		return encodeRef(ref{
			Kind:     kindInline,
			Filename: filename,
			Mimetype: contentType,
			Data:     base64.StdEncoding.EncodeToString(data),
		})
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("resume-%d-%s%s",
		time.Now().UnixMilli(),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:10],
		filepath.Ext(filename),
	)
	path := filepath.Join(s.dir, name)
	if s.mode == ModeDiskAbsolute {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve upload path: %w", err)
		}
		path = abs
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}

	return encodeRef(ref{
		Kind:     kindPath,
		Value:    path,
		Filename: filename,
		Mimetype: contentType,
	})
}

// Resolve decodes a stored reference to the file it names. A reference whose
// blob is gone yields ErrResumeMissing; a reference that cannot be decoded
// yields ErrResumeCorrupted. The two are distinct for diagnostics even though
// callers report both as not-found.
func (s *Storage) Resolve(stored string) (*File, error) {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return nil, e.ErrResumeMissing
	}

	if !strings.HasPrefix(stored, "{") {
		// Legacy bare path written before references were tagged.
		data, err := readDisk(stored)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        filepath.Base(stored),
			ContentType: defaultContentType,
			Data:        data,
		}, nil
	}

	var r ref
	if err := json.Unmarshal([]byte(stored), &r); err != nil {
		return nil, fmt.Errorf("%w: undecodable reference", e.ErrResumeCorrupted)
	}

	switch {
	case r.Kind == kindInline, r.Kind == "" && r.Data != "":
		// Untagged inline JSON predates the kind discriminant.
		data, err := base64.StdEncoding.DecodeString(r.Data)
		if err != nil || len(data) == 0 {
			return nil, fmt.Errorf("%w: invalid inline payload", e.ErrResumeCorrupted)
		}
		return &File{
			Name:        orDefault(r.Filename, "resume.pdf"),
			ContentType: orDefault(r.Mimetype, defaultContentType),
			Data:        data,
		}, nil

	case r.Kind == kindPath && r.Value != "":
		data, err := readDisk(r.Value)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        orDefault(r.Filename, filepath.Base(r.Value)),
			ContentType: orDefault(r.Mimetype, defaultContentType),
			Data:        data,
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown reference kind %q", e.ErrResumeCorrupted, r.Kind)
}

// Remove deletes the blob behind a path reference. Deleting an application
// cascades here so disk files are not orphaned; inline references have no
// blob and are a no-op. Only unexpected failures are returned, for logging.
func (s *Storage) Remove(stored string) error {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return nil
	}

	path := stored
	if strings.HasPrefix(stored, "{") {
		var r ref
		if err := json.Unmarshal([]byte(stored), &r); err != nil || r.Kind != kindPath {
			return nil
		}
		path = r.Value
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove resume file: %w", err)
	}
	return nil
}

func encodeRef(r ref) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume reference: %w", err)
	}
	return string(data), nil
}

func readDisk(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, e.ErrResumeMissing
		}
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	return data, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
