//go:build !windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path"
	"runtime"
	"syscall"
)

// socketPath is automatically initialized based on platform conventions:
//   - macOS: ~/Library/Caches/vrmusicremote/vrmusicremote.sock (or /tmp/vrmusicremote-{uid}.sock as fallback)
//   - Linux/Unix: $XDG_RUNTIME_DIR/vrmusicremote.sock (or /tmp/vrmusicremote-{uid}.sock as fallback)
var socketPath = "/tmp/vrmusicremote.sock"

func init() {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			socketPath = path.Join(home, "Library", "Caches", "vrmusicremote", "vrmusicremote.sock")
		} else if user, err := user.Current(); err == nil {
			socketPath = fmt.Sprintf("/tmp/vrmusicremote-%s.sock", user.Uid)
		}
	} else {
		if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
			socketPath = path.Join(runtime, "vrmusicremote.sock")
		} else if user, err := user.Current(); err == nil {
			socketPath = fmt.Sprintf("/tmp/vrmusicremote-%s.sock", user.Uid)
		}
	}
}

// Dial establishes a connection to the IPC socket.
// Returns an error if the socket doesn't exist or connection fails.
func Dial() (net.Conn, error) {
	return net.Dial("unix", socketPath)
}

// Listen creates a Unix domain socket listener at the configured path.
// It must only be called once Dial has failed: a socket file left behind
// by a crashed instance is removed and the listen retried.
// The socket should be cleaned up with DestroyConn() when done.
func Listen() (net.Listener, error) {
	os.MkdirAll(path.Dir(socketPath), 0700)
	l, err := net.Listen("unix", socketPath)
	if errors.Is(err, syscall.EADDRINUSE) {
		os.Remove(socketPath)
		l, err = net.Listen("unix", socketPath)
	}
	return l, err
}

// DestroyConn removes the Unix socket file from the filesystem.
// Should be called during application shutdown.
func DestroyConn() error {
	return os.Remove(socketPath)
}
