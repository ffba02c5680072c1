package file

import (
	"path/filepath"
	"strings"
)

// OutputPath names the accompaniment for input after the detected key, e.g.
// songs/tune.mid -> out/tune-Accompaniment-Am.mid. An empty outDir writes
// next to the input.
func OutputPath(input string, keyName string, outDir string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base+"-Accompaniment-"+keyName+".mid")
}
