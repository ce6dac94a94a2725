package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Extension is the suffix of rendered documents.
const Extension = ".pdf"

const defaultStem = "Presentation"

var (
	nonWordRun  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	spaceRun    = regexp.MustCompile(`\s+`)
	underscores = regexp.MustCompile(`_+`)
)

// SafeStem turns a title into a file stem: at most 50 characters, non-word
// characters and whitespace replaced by underscores, "Presentation" when
// nothing is left. Stems longer than 30 characters keep their first three
// words.
func SafeStem(title string) string {
	s := title
	if utf8.RuneCountInString(s) > 50 {
		s = string([]rune(s)[:50])
	}
	s = nonWordRun.ReplaceAllString(s, "_")
	s = spaceRun.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return defaultStem
	}
	if utf8.RuneCountInString(s) > 30 {
		words := strings.Split(s, "_")
		if len(words) > 3 {
			words = words[:3]
		}
		s = strings.Join(words, "_")
	}
	return s
}

// Filename picks the output name: the explicit name, else the suggested
// stem, else one derived from title. ".pdf" is appended when missing and
// names over 100 characters are replaced by "Presentation.pdf".
func Filename(explicit, suggested, title string) string {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = strings.TrimSpace(suggested)
	}
	if name == "" {
		name = SafeStem(title)
	}
	name = filepath.Base(name)
	if !strings.HasSuffix(strings.ToLower(name), Extension) {
		name += Extension
	}
	if utf8.RuneCountInString(name) > 100 {
		name = defaultStem + Extension
	}
	return name
}

// FileInfo describes a rendered document.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// ListFiles returns the rendered documents in dir, newest first. A missing
// directory yields no files.
func ListFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// DeleteFile removes a rendered document. Only plain ".pdf" names inside dir
// are accepted.
func DeleteFile(dir, name string) error {
	if name != filepath.Base(name) || !strings.EqualFold(filepath.Ext(name), Extension) {
		return fmt.Errorf("refusing to delete %q: not a rendered document name", name)
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}
