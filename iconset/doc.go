// Package iconset builds the PNG icons of a web application.
//
// Generate is the single-icon entry point. Builder renders a whole set of
// Specs (the default PWA set or one loaded from YAML) into an output
// directory and WriteManifest emits the matching web manifest fragment.
package iconset
