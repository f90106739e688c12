package clipboard

import (
	"os"
	"runtime"
	"testing"
)

func TestAdapterArgs_WaylandSession(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("adapter selection only differs on linux")
	}
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	args := adapterArgs()
	if len(args) == 0 || args[0] != "wl-copy" {
		t.Fatalf("expected wl-copy under wayland, got %v", args)
	}
}

func TestAdapterArgs_X11Session(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("adapter selection only differs on linux")
	}
	os.Unsetenv("XDG_SESSION_TYPE")
	args := adapterArgs()
	if len(args) == 0 || args[0] != "xclip" {
		t.Fatalf("expected xclip outside wayland, got %v", args)
	}
}
