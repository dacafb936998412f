package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/vecplot/vecerr"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Debug("command failed", "code", vecerr.CodeOf(err), "fields", vecerr.FieldsOf(err))
		fmt.Fprintln(os.Stderr, err)
		if vecerr.IsInvalidInput(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
