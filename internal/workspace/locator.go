// Package workspace locates SFDX package directories for a set of
// workspace roots (spec.md §4.5).
package workspace

import (
	"encoding/json"
	"path/filepath"

	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/spf13/afero"
)

// Root is one workspace root together with the package directories its
// sfdx-project.json declares.
type Root struct {
	URI             string
	Path            string
	PackageDirURIs  []string
	PackageDirPaths []string
}

type projectManifest struct {
	PackageDirectories []packageDirectory `json:"packageDirectories"`
}

type packageDirectory struct {
	Path string `json:"path"`
}

// Locate reads <root>/sfdx-project.json for each of rootURIs and computes
// the package directory set. A missing or unparseable manifest yields an
// empty package set for that root — non-fatal, per spec.md §4.5.
func Locate(fs fsys.FS, rootURIs []string) []Root {
	roots := make([]Root, 0, len(rootURIs))
	for _, rootURI := range rootURIs {
		rootPath := FilenameFromURI(rootURI)
		roots = append(roots, Root{
			URI:             rootURI,
			Path:            rootPath,
			PackageDirURIs:  packageDirURIs(fs, rootPath),
			PackageDirPaths: packageDirPaths(fs, rootPath),
		})
	}
	return roots
}

func packageDirPaths(fs fsys.FS, rootPath string) []string {
	manifestPath := filepath.Join(rootPath, "sfdx-project.json")
	data, err := afero.ReadFile(fs, manifestPath)
	if err != nil {
		return nil
	}

	var manifest projectManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	paths := make([]string, 0, len(manifest.PackageDirectories))
	for _, pd := range manifest.PackageDirectories {
		if pd.Path == "" {
			continue
		}
		paths = append(paths, filepath.Join(rootPath, filepath.FromSlash(pd.Path)))
	}
	return paths
}

func packageDirURIs(fs fsys.FS, rootPath string) []string {
	paths := packageDirPaths(fs, rootPath)
	uris := make([]string, 0, len(paths))
	for _, p := range paths {
		uris = append(uris, URIFromFilename(p))
	}
	return uris
}
