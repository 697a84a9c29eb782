// Package alphabet loads and normalizes letter alphabets.
package alphabet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classic is the default consonant set; the letters are acoustically distinct.
var Classic = []string{"C", "H", "K", "L", "Q", "R", "S", "T"}

var builtin = map[string][]string{
	"classic": Classic,
	"digits":  {"1", "2", "3", "4", "5", "6", "7", "8", "9"},
}

// Builtins returns the names of the built-in alphabets.
func Builtins() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize trims and upper-cases symbols, dropping blanks and repeats.
func Normalize(letters []string) []string {
	upper := cases.Upper(language.Und)
	out := make([]string, 0, len(letters))
	seen := make(map[string]struct{}, len(letters))
	for _, l := range letters {
		l = upper.String(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Resolve returns the alphabet named ref: a built-in name, a file in dir
// called <ref>.txt, or a path to a file.
func Resolve(ref, dir string) ([]string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("alphabet name is empty")
	}
	if letters, ok := builtin[strings.ToLower(ref)]; ok {
		return append([]string(nil), letters...), nil
	}
	path := ref
	if !strings.ContainsRune(ref, filepath.Separator) && filepath.Ext(ref) == "" {
		path = filepath.Join(dir, ref+".txt")
	}
	return Load(path)
}

// Load reads one symbol per line. Blank lines and lines starting with '#'
// are skipped.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only alphabet file.
			_ = cerr
		}
	}()

	var letters []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		letters = append(letters, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	letters = Normalize(letters)
	if len(letters) == 0 {
		return nil, fmt.Errorf("alphabet is empty")
	}
	return letters, nil
}

// List returns the names of alphabet files in dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read alphabet directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}
