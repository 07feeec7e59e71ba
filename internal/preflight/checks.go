package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// maxSunPath is the capacity of sockaddr_un.sun_path on Linux, less the
// trailing NUL.
const maxSunPath = 107

// longestClientName is the longest socket file name a client binds next
// to the server socket when waiting for a reply.
const longestClientName = len("client-00000000-0000-0000-0000-000000000000.sock")

// CheckConfigFile verifies that the configuration file, when present, is a
// readable regular file. A missing file passes; defaults apply then.
func CheckConfigFile(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Passed: true, Detail: "no path configured (built-in defaults)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (missing, defaults apply)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSocketPath verifies that the server socket path, and the client
// reply sockets bound beside it, fit in a unix socket address.
func CheckSocketPath(name, path string) Result {
	if len(path) > maxSunPath {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %d bytes exceeds the %d byte socket address limit)", path, len(path), maxSunPath)}
	}
	clientLen := len(filepath.Dir(path)) + 1 + longestClientName
	if clientLen > maxSunPath {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: client sockets in this directory would need %d bytes, limit is %d)", path, clientLen, maxSunPath)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (fits socket address)", path)}
}
