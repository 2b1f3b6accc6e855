// Package file implements the static-file desired-state source: a
// directory of ".kuma" label files, each holding the same dotted
// "<id>.<type>.<field>: value" lines that the docker label source
// reads from container labels, letting entities be declared without a
// running container.
package file

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/autokuma-go/autokuma/internal/compile"
	"github.com/pkg/errors"
)

// Read walks dir for files matching pattern (default "*.kuma") and
// parses each line as "key: value" or "key = value", skipping blank
// lines and lines starting with '#'.
func Read(dir string, pattern string) ([]compile.Source, error) {
	if pattern == "" {
		pattern = "*.kuma"
	}

	var sources []compile.Source
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil || !matched {
			return err
		}
		fileSources, err := parseFile(path)
		if err != nil {
			return errors.Wrapf(err, "parsing %s", path)
		}
		sources = append(sources, fileSources...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading static config dir %s", dir)
	}
	return sources, nil
}

func parseFile(path string) ([]compile.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sources []compile.Source
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sep := strings.IndexAny(line, ":=")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		value = unquote(value)
		sources = append(sources, compile.Source{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
