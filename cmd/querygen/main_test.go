package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/getmockd/querygen/pkg/cli"
)

// TestMain lets testscript run the querygen command in-process.
func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"querygen": func() { os.Exit(cli.Main()) },
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
	})
}
