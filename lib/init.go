package spanpaperlib

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/awused/awconf"
)

type AbsolutePath = string
type RelativePath = string

type Config struct {
	LayoutFile          string
	OutputDir           string
	TempDirectory       string
	LogFile             string
	DatabaseDir         string
	OriginalsDirectory  string
	ImageFileExtensions []string
	JPEGQuality         int
	PreviewMaxDim       int
}

var conf *Config

var tempDir string
var tempErr error
var tempOnce sync.Once

func TempDir() (string, error) {
	c, err := GetConfig()
	if err != nil {
		return "", err
	}

	tempOnce.Do(func() {
		tempDir, tempErr = ioutil.TempDir(c.TempDirectory, "spanpapers")
	})

	return tempDir, tempErr
}

func GetConfig() (*Config, error) {
	if conf != nil {
		return conf, nil
	}

	return nil, fmt.Errorf("Init never called")
}

// Be sure to defer Cleanup() after calling this
func Init() (*Config, error) {
	c := &Config{}

	if err := awconf.LoadConfig("spanpapers", c); err != nil {
		return nil, err
	}

	conf = c
	err := c.validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func Cleanup() error {
	// tempDir is private and can't be set outside of this package
	if tempDir != "" {
		return os.RemoveAll(tempDir)
	}
	return nil
}

func (c *Config) validate() error {
	if c.LayoutFile == "" {
		return fmt.Errorf("Config missing LayoutFile")
	}

	fi, err := os.Stat(c.LayoutFile)
	if err != nil {
		return fmt.Errorf(
			"Error calling os.Stat on LayoutFile [%s]: %s", c.LayoutFile, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("LayoutFile [%s] is not a regular file", c.LayoutFile)
	}

	if c.TempDirectory != "" {
		fi, err = os.Stat(c.TempDirectory)

		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("TempDirectory [%s] is not a directory", c.TempDirectory)
		}
	}

	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(os.Getenv("HOME"), ".spanpapers")
	}

	fi, err = os.Stat(c.OutputDir)
	if err == nil && !fi.IsDir() {
		return fmt.Errorf("OutputDir [%s] is a regular file", c.OutputDir)
	} else if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf(
				"Error calling os.Stat on OutputDir [%s]: %s", c.OutputDir, err)
		}
	}

	// DatabaseDir and OriginalsDirectory only matter for random, commands
	// that don't need them shouldn't fail on their absence.
	if c.DatabaseDir != "" {
		fi, err = os.Stat(c.DatabaseDir)
		if err != nil {
			return fmt.Errorf(
				"Error calling os.Stat on DatabaseDir [%s]: %s", c.DatabaseDir, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("DatabaseDir [%s] is not a directory", c.DatabaseDir)
		}
	}

	if c.OriginalsDirectory != "" {
		fi, err = os.Stat(c.OriginalsDirectory)
		if err != nil {
			return fmt.Errorf(
				"Error calling os.Stat on OriginalsDirectory [%s]: %s",
				c.OriginalsDirectory, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf(
				"OriginalsDirectory [%s] is not a directory", c.OriginalsDirectory)
		}
	}

	if len(c.ImageFileExtensions) == 0 {
		c.ImageFileExtensions = []string{
			"png", "jpg", "jpeg", "bmp", "gif", "tiff", "webp"}
	}

	if c.JPEGQuality == 0 {
		c.JPEGQuality = 90
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf(
			"JPEGQuality %d out of range, must be between 1 and 100", c.JPEGQuality)
	}

	if c.PreviewMaxDim == 0 {
		c.PreviewMaxDim = 1200
	}
	if c.PreviewMaxDim < 100 {
		return fmt.Errorf("PreviewMaxDim %d is too small to be useful", c.PreviewMaxDim)
	}

	return nil
}
