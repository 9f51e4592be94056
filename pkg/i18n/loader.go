package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithJSONFiles loads one translation file per language from dir in fsys.
// The file name (without extension) is the language code.
//
// Example structure:
//
//	lang/zh.json
//	lang/en.json
func WithJSONFiles(fsys fs.FS, dir string) Option {
	return func(i *I18n) error {
		return loadFiles(i, fsys, dir, []string{".json"}, json.Unmarshal)
	}
}

// WithYAMLFiles loads {lang}.yaml or {lang}.yml files from dir in fsys.
func WithYAMLFiles(fsys fs.FS, dir string) Option {
	return func(i *I18n) error {
		return loadFiles(i, fsys, dir, []string{".yaml", ".yml"}, yaml.Unmarshal)
	}
}

func loadFiles(i *I18n, fsys fs.FS, dir string, exts []string, unmarshal func([]byte, any) error) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading %q: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if !slices.Contains(exts, ext) {
			continue
		}

		lang := strings.TrimSuffix(name, path.Ext(name))
		if lang == "" {
			return fmt.Errorf("%w: %q has no language name", ErrInvalidFile, name)
		}

		filePath := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var translations map[string]any
		if err := unmarshal(data, &translations); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		i.add(lang, flattenTranslations(translations, ""))
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("%w: no translation files in %q", ErrInvalidFile, dir)
	}
	return nil
}
