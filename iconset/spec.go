package iconset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pwa_icons/core"
)

// Spec describes one icon file.
type Spec struct {
	// Name is the file name written into the output directory.
	Name string `yaml:"name"`

	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	// Size sets Width and Height together for square icons.
	Size int `yaml:"size,omitempty"`

	// Purpose is copied into the manifest entry ("any", "maskable", ...).
	Purpose string `yaml:"purpose,omitempty"`

	// DeriveFrom renders a DeriveFrom x DeriveFrom icon and downsamples it.
	DeriveFrom int `yaml:"derive_from,omitempty"`

	// SkipManifest leaves the icon out of the manifest fragment.
	SkipManifest bool `yaml:"skip_manifest,omitempty"`
}

// SpecFile is the YAML document accepted by LoadSpecs.
//
//	icons:
//	  - name: icon-192.png
//	    size: 192
//	  - name: favicon.png
//	    size: 32
//	    derive_from: 192
type SpecFile struct {
	Icons []Spec `yaml:"icons"`
}

// DefaultSpecs returns the standard PWA icon set.
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: "icon-192.png", Width: 192, Height: 192},
		{Name: "icon-512.png", Width: 512, Height: 512, Purpose: "any maskable"},
		{Name: "favicon.png", Width: 32, Height: 32, SkipManifest: true},
	}
}

// Sizes returns the manifest "sizes" value, e.g. "192x192".
func (s Spec) Sizes() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Derived reports whether the icon is downsampled from another rendering.
func (s Spec) Derived() bool {
	return s.DeriveFrom > 0 && (s.DeriveFrom != s.Width || s.DeriveFrom != s.Height)
}

// normalize trims the name and expands the size shorthand. size cannot be
// mixed with width or height.
func (s *Spec) normalize() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Size == 0 {
		return nil
	}
	if s.Width != 0 || s.Height != 0 {
		return core.ErrConflictingIconSize(s.Name)
	}
	s.Width, s.Height = s.Size, s.Size
	return nil
}

// LoadSpecs reads and validates an icon set file.
func LoadSpecs(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ErrSpecFileUnreadable(path, err)
	}
	specs, err := ParseSpecs(data)
	if err != nil {
		if _, ok := core.IsConfigError(err); ok {
			return nil, err
		}
		return nil, core.ErrSpecFileInvalid(path, err)
	}
	return specs, nil
}

// ParseSpecs decodes an icon set document. Unknown keys are rejected.
func ParseSpecs(data []byte) ([]Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file SpecFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("icon set is empty")
		}
		return nil, err
	}
	if len(file.Icons) == 0 {
		return nil, errors.New("icon set has no icons")
	}
	for i := range file.Icons {
		if err := file.Icons[i].normalize(); err != nil {
			return nil, err
		}
	}
	if err := ValidateSpecs(file.Icons); err != nil {
		return nil, err
	}
	return file.Icons, nil
}

// ValidateSpecs checks names and sizes and rejects two specs writing the
// same file.
func ValidateSpecs(specs []Spec) error {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if s.Name == "" || s.Name == "." || s.Name == ".." || s.Name != filepath.Base(s.Name) || strings.ContainsAny(s.Name, `/\`) {
			return core.ErrInvalidIconName(s.Name)
		}
		if s.Width <= 0 || s.Height <= 0 || s.DeriveFrom < 0 {
			return core.ErrInvalidIconSize(s.Name, s.Width, s.Height)
		}
		if _, dup := seen[s.Name]; dup {
			return core.ErrDuplicateIcon(s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
