package workspace

import (
	"testing"

	"github.com/apexlang/apex-lsp/internal/fsys"
	"github.com/spf13/afero"
)

func TestFilenameFromURIRoundTrip(t *testing.T) {
	uri := "file:///home/dev/my-project"
	path := FilenameFromURI(uri)
	if path != "/home/dev/my-project" {
		t.Fatalf("got %q", path)
	}
	if URIFromFilename(path) != uri {
		t.Fatalf("round-trip mismatch: %q", URIFromFilename(path))
	}
}

func TestFilenameFromURINonFileURIPassesThrough(t *testing.T) {
	if got := FilenameFromURI("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Fatalf("got %q", got)
	}
}

func TestLocateReadsPackageDirectoriesFromManifest(t *testing.T) {
	fs := fsys.NewMem()
	root := "/workspace"
	manifest := `{"packageDirectories": [{"path": "force-app"}, {"path": "unpackaged"}]}`
	if err := afero.WriteFile(fs, root+"/sfdx-project.json", []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	roots := Locate(fs, []string{URIFromFilename(root)})
	if len(roots) != 1 {
		t.Fatalf("got %d roots", len(roots))
	}
	if len(roots[0].PackageDirPaths) != 2 {
		t.Fatalf("got %d package dirs: %v", len(roots[0].PackageDirPaths), roots[0].PackageDirPaths)
	}
}

func TestLocateMissingManifestYieldsEmptyPackageSet(t *testing.T) {
	fs := fsys.NewMem()
	root := "/workspace-without-manifest"
	roots := Locate(fs, []string{URIFromFilename(root)})
	if len(roots) != 1 {
		t.Fatalf("got %d roots", len(roots))
	}
	if len(roots[0].PackageDirPaths) != 0 {
		t.Fatalf("expected no package dirs, got %v", roots[0].PackageDirPaths)
	}
}

func TestLocateMalformedManifestYieldsEmptyPackageSet(t *testing.T) {
	fs := fsys.NewMem()
	root := "/workspace"
	if err := afero.WriteFile(fs, root+"/sfdx-project.json", []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	roots := Locate(fs, []string{URIFromFilename(root)})
	if len(roots[0].PackageDirPaths) != 0 {
		t.Fatalf("expected no package dirs for malformed manifest, got %v", roots[0].PackageDirPaths)
	}
}
