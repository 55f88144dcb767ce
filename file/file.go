/*
File: loxscript/file/file.go

Package file reads loxscript source from disk, for both CLI file-mode
execution and the REPL's `.load <path>` meta-command. Grounded on
file/file.go's os.ReadFile + []byte-to-string conversion, trimmed to the
one operation this module actually needs.
*/
package file

import "os"

// Read loads the full contents of path as a string.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
