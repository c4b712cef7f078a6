package android

import "path/filepath"

var (
	ManifestPath = filepath.Join("android", "app", "src", "main", AndroidManifestName)
	StringsPath  = filepath.Join("android", "app", "src", "main", "res", "values", StringsName)
)

// Project is the set of Android documents patched in one run.
type Project struct {
	Manifest *Manifest
	Strings  *Strings
}
