package cmd

import (
	"testing"
)

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"speech-server", "debug", "debug-log"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to be registered", name)
		}
	}
}

func TestNewRootCmd_ShortFlag(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Flags().ShorthandLookup("s") == nil {
		t.Error("expected -s shorthand for --speech-server")
	}
}
