//go:build !windows

package apexparse

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

typedef void *(*lang_fn)(void);

static void *apexparse_call_lang_fn(lang_fn fn) {
	return fn();
}

static void *apexparse_load_symbol(const char *path, const char *symbol, char **err_out) {
	void *handle = dlopen(path, RTLD_NOW | RTLD_GLOBAL);
	if (!handle) {
		*err_out = (char *)dlerror();
		return NULL;
	}
	dlerror(); // clear any existing error
	void *sym = dlsym(handle, symbol);
	char *sym_err = dlerror();
	if (sym_err != NULL) {
		*err_out = sym_err;
		return NULL;
	}
	return sym;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// loadLanguageFromSharedLibrary dlopen()s the shared library at path,
// resolves the `tree_sitter_apex` entry point the grammar exposes by
// convention, invokes it, and wraps the resulting TSLanguage* as a
// *sitter.Language. This is the entire surface through which the opaque
// tree-sitter Apex grammar (spec.md §1: "consumed as an opaque tree-sitter
// library via a narrow binding") enters the process.
func loadLanguageFromSharedLibrary(path string) (*sitter.Language, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	cSymbol := C.CString(languageSymbol)
	defer C.free(unsafe.Pointer(cSymbol))

	var cErr *C.char
	sym := C.apexparse_load_symbol(cPath, cSymbol, &cErr)
	if sym == nil {
		return nil, fmt.Errorf("apexparse: loading %s: %s", path, C.GoString(cErr))
	}

	langPtr := C.apexparse_call_lang_fn(C.lang_fn(sym))
	if langPtr == nil {
		return nil, fmt.Errorf("apexparse: %s() returned a null TSLanguage", languageSymbol)
	}

	return sitter.NewLanguage(unsafe.Pointer(langPtr)), nil
}
