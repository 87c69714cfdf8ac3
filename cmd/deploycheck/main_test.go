package main

import (
	"os"
	"testing"

	"github.com/vertti/deploycheck/pkg/output"
)

func TestMain(m *testing.M) {
	output.DisableColor()
	os.Exit(m.Run())
}
