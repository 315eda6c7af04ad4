package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// readLeaves reads newline-delimited leaves from path, or stdin if path is
// "-" or empty. A trailing empty line is ignored.
func readLeaves(path string) ([][]byte, error) {
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var leaves [][]byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		leaves = append(leaves, []byte(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read leaves: %w", err)
	}
	if n := len(leaves); n > 0 && len(leaves[n-1]) == 0 {
		leaves = leaves[:n-1]
	}
	return leaves, nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return f, f.Close, nil
}
