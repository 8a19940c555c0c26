//go:build windows

package apexparse

import (
	"fmt"
	"syscall"
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// loadLanguageFromSharedLibrary resolves the `tree_sitter_apex` export from
// a Windows DLL via LoadLibrary/GetProcAddress, mirroring the dlopen/dlsym
// path used on Unix platforms (binding_unix.go).
func loadLanguageFromSharedLibrary(path string) (*sitter.Language, error) {
	dll, err := syscall.LoadDLL(path)
	if err != nil {
		return nil, fmt.Errorf("apexparse: LoadLibrary %s: %w", path, err)
	}
	proc, err := dll.FindProc(languageSymbol)
	if err != nil {
		return nil, fmt.Errorf("apexparse: GetProcAddress %s: %w", languageSymbol, err)
	}
	ret, _, callErr := proc.Call()
	if ret == 0 {
		return nil, fmt.Errorf("apexparse: %s() returned a null TSLanguage: %v", languageSymbol, callErr)
	}
	return sitter.NewLanguage(unsafe.Pointer(ret)), nil
}
