package spanpaperlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetAllOriginals lists every image under OriginalsDirectory as relative
// slash separated paths, the stable form the picker database keys on.
func GetAllOriginals() ([]RelativePath, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}
	if c.OriginalsDirectory == "" {
		return nil, fmt.Errorf("Config missing OriginalsDirectory")
	}

	ret := []RelativePath{}
	err = filepath.Walk(
		c.OriginalsDirectory,
		func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() || !hasImageExtension(c, path) {
				return nil
			}

			rel, err := filepath.Rel(c.OriginalsDirectory, path)
			if err != nil {
				return err
			}
			ret = append(ret, filepath.ToSlash(rel))
			return nil
		})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

func hasImageExtension(c *Config, path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range c.ImageFileExtensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func GetFullInputPath(rel RelativePath) (AbsolutePath, error) {
	c, err := GetConfig()
	if err != nil {
		return "", err
	}
	if c.OriginalsDirectory == "" {
		return "", fmt.Errorf("Config missing OriginalsDirectory")
	}

	return filepath.Abs(
		filepath.Join(c.OriginalsDirectory, filepath.FromSlash(rel)))
}
