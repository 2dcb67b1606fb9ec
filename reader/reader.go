// Package reader loads the export table out of a built tawa library.
package reader

import (
	"github.com/coreos/pkg/dlopen"
	"github.com/pontaoski/tawa/exports"
	"github.com/ztrue/tracerr"
)

import "C"

// ReadRaw returns the JSON text stored in the library's export symbol.
func ReadRaw(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(exports.Symbol)
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	return C.GoString((*C.char)(sym)), nil
}

func ReadExports(from string) (exports.Table, error) {
	data, err := ReadRaw(from)
	if err != nil {
		return exports.Table{}, err
	}
	return exports.Decode(data)
}
