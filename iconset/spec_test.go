package iconset

import (
	"os"
	"path/filepath"
	"testing"

	"pwa_icons/core"
)

func TestDefaultSpecs(t *testing.T) {
	specs := DefaultSpecs()
	if err := ValidateSpecs(specs); err != nil {
		t.Fatalf("ValidateSpecs(DefaultSpecs()) error = %v", err)
	}

	want := []struct {
		name  string
		sizes string
	}{
		{"icon-192.png", "192x192"},
		{"icon-512.png", "512x512"},
		{"favicon.png", "32x32"},
	}
	if len(specs) != len(want) {
		t.Fatalf("len = %d, want %d", len(specs), len(want))
	}
	for i, w := range want {
		if specs[i].Name != w.name || specs[i].Sizes() != w.sizes {
			t.Errorf("specs[%d] = %s %s, want %s %s", i, specs[i].Name, specs[i].Sizes(), w.name, w.sizes)
		}
		if specs[i].Derived() {
			t.Errorf("specs[%d] should not be derived", i)
		}
	}
}

func TestParseSpecs(t *testing.T) {
	doc := []byte(`
icons:
  - name: icon-192.png
    size: 192
  - name: wide.png
    width: 120
    height: 40
    purpose: any
  - name: favicon.png
    size: 32
    derive_from: 192
    skip_manifest: true
`)

	specs, err := ParseSpecs(doc)
	if err != nil {
		t.Fatalf("ParseSpecs() error = %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("len = %d, want 3", len(specs))
	}
	if specs[0].Width != 192 || specs[0].Height != 192 {
		t.Errorf("size shorthand = %s, want 192x192", specs[0].Sizes())
	}
	if specs[1].Sizes() != "120x40" || specs[1].Purpose != "any" {
		t.Errorf("wide = %+v", specs[1])
	}
	if !specs[2].Derived() || !specs[2].SkipManifest {
		t.Errorf("favicon = %+v", specs[2])
	}
}

func TestParseSpecs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode string
	}{
		{"duplicate names", "icons:\n  - {name: a.png, size: 8}\n  - {name: a.png, size: 16}\n", core.ErrCodeDuplicateIcon},
		{"zero width", "icons:\n  - {name: a.png, width: 0, height: 8}\n", core.ErrCodeInvalidIconSize},
		{"negative size", "icons:\n  - {name: a.png, width: -4, height: 8}\n", core.ErrCodeInvalidIconSize},
		{"size with width", "icons:\n  - {name: a.png, size: 64, width: 32}\n", core.ErrCodeConflictingIconSize},
		{"size with height", "icons:\n  - {name: a.png, size: 64, height: 64}\n", core.ErrCodeConflictingIconSize},
		{"negative shorthand", "icons:\n  - {name: a.png, size: -8}\n", core.ErrCodeInvalidIconSize},
		{"negative derive", "icons:\n  - {name: a.png, size: 8, derive_from: -1}\n", core.ErrCodeInvalidIconSize},
		{"missing name", "icons:\n  - {size: 8}\n", core.ErrCodeInvalidIconName},
		{"path in name", "icons:\n  - {name: ../a.png, size: 8}\n", core.ErrCodeInvalidIconName},
		{"unknown key", "icons:\n  - {name: a.png, size: 8, colour: red}\n", ""},
		{"no icons", "icons: []\n", ""},
		{"empty document", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpecs([]byte(tt.doc))
			if err == nil {
				t.Fatal("ParseSpecs() expected error")
			}
			if got := core.GetErrorCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLoadSpecs(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "icons.yaml")
	if err := os.WriteFile(good, []byte("icons:\n  - {name: icon.png, size: 48}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	specs, err := LoadSpecs(good)
	if err != nil {
		t.Fatalf("LoadSpecs() error = %v", err)
	}
	if len(specs) != 1 || specs[0].Sizes() != "48x48" {
		t.Errorf("specs = %+v", specs)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("icons: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpecs(bad); core.GetErrorCode(err) != core.ErrCodeSpecFileInvalid {
		t.Errorf("invalid YAML error = %v, want %s", err, core.ErrCodeSpecFileInvalid)
	}

	dup := filepath.Join(dir, "dup.yaml")
	if err := os.WriteFile(dup, []byte("icons:\n  - {name: a.png, size: 8}\n  - {name: a.png, size: 8}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpecs(dup); core.GetErrorCode(err) != core.ErrCodeDuplicateIcon {
		t.Errorf("duplicate error = %v, want %s", err, core.ErrCodeDuplicateIcon)
	}

	if _, err := LoadSpecs(filepath.Join(dir, "missing.yaml")); core.GetErrorCode(err) != core.ErrCodeSpecFileUnreadable {
		t.Errorf("missing file error = %v, want %s", err, core.ErrCodeSpecFileUnreadable)
	}
}
