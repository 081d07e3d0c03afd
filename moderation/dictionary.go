package moderation

import (
	"bufio"
	"bytes"
	"chat-box/errors"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"
)

//go:embed dictionaries/*.txt
var dictionaries embed.FS

// Dictionary is the merged content of the per language word lists.
type Dictionary struct {
	Words     []string
	Languages []string
}

// DefaultDictionary loads the word lists shipped with the binary.
func DefaultDictionary() (*Dictionary, error) {
	return LoadDictionary(dictionaries, "dictionaries")
}

// LoadDictionary reads every .txt file of dir, one word per line.
// The file name is the language ("fr.txt" -> "fr").
func LoadDictionary(fsys fs.FS, dir string) (*Dictionary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		// Scanner copes with \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}
	words := lo.Keys(unique)
	sort.Strings(words)
	return &Dictionary{Words: words, Languages: languages}, nil
}
