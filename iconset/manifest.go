package iconset

import (
	"encoding/json"
	"fmt"
	"path"

	"pwa_icons/pngenc"
)

// ManifestIcon is one entry of the web manifest "icons" array.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest is the fragment merged into a web app manifest.
type Manifest struct {
	Icons []ManifestIcon `json:"icons"`
}

// NewManifest lists the written icons of run, in order, leaving out failed
// icons and specs marked SkipManifest. srcPrefix is the path the output
// directory is served under, relative to the web root.
func NewManifest(srcPrefix string, run *Run) Manifest {
	m := Manifest{Icons: []ManifestIcon{}}
	if run == nil {
		return m
	}
	for _, res := range run.Succeeded() {
		if res.Spec.SkipManifest {
			continue
		}
		m.Icons = append(m.Icons, ManifestIcon{
			Src:     path.Join(srcPrefix, res.Spec.Name),
			Sizes:   res.Spec.Sizes(),
			Type:    "image/png",
			Purpose: res.Spec.Purpose,
		})
	}
	return m
}

// WriteManifest writes the manifest fragment for run to filename
// atomically.
func WriteManifest(filename, srcPrefix string, run *Run) error {
	data, err := json.MarshalIndent(NewManifest(srcPrefix, run), "", "  ")
	if err != nil {
		return fmt.Errorf("iconset: encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := pngenc.WriteFile(filename, data); err != nil {
		return fmt.Errorf("iconset: %w", err)
	}
	return nil
}
