package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openViewer opens the image in the platform's default viewer. This is
// the closest equivalent to an interactive plot window; the process
// does not wait for the viewer to close.
func openViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("no image viewer known for %s", runtime.GOOS)
	}
	return cmd.Start()
}
