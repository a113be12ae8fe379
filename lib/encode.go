package spanpaperlib

import (
	"fmt"
	"image"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// BMP takes a lot of space but PNG takes non-trivial CPU time
const outputFormat = "bmp"

// SaveImage writes img to path, picking the format from the extension.
// jpegQuality only matters for .jpg and .jpeg outputs.
func SaveImage(img image.Image, path AbsolutePath, jpegQuality int) error {
	if img == nil {
		return fmt.Errorf("No image to save")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if jpegQuality < 1 || jpegQuality > 100 {
			return fmt.Errorf(
				"Invalid JPEG quality %d, must be between 1 and 100", jpegQuality)
		}
		return imaging.Save(img, path, imaging.JPEGQuality(jpegQuality))
	case ".png", ".bmp", ".gif", ".tif", ".tiff":
		return imaging.Save(img, path)
	default:
		return fmt.Errorf("Unsupported output format [%s]", filepath.Ext(path))
	}
}

// ShrinkToFit scales img down to fit within maxDim on both axes, keeping
// the aspect ratio. Images already small enough come back unscaled.
func ShrinkToFit(img image.Image, maxDim int) *image.NRGBA {
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

func getNextOutputFile(c *Config) (AbsolutePath, error) {
	dir, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return "", err
	}

	f, err := ioutil.TempFile(dir, "*."+outputFormat)
	if f != nil {
		err = f.Close()
	}
	if err != nil {
		return "", err
	}

	return f.Name(), nil
}

// InstallComposite writes the composite to a fresh file in OutputDir and
// points the desktop at it.
func InstallComposite(comp *Composite) error {
	if comp == nil || comp.Image == nil {
		return nil
	}

	c, err := GetConfig()
	if err != nil {
		return err
	}

	err = os.MkdirAll(c.OutputDir, 0755)
	if err != nil {
		return fmt.Errorf("Error creating OutputDir [%s]: %s", c.OutputDir, err)
	}

	out, err := getNextOutputFile(c)
	if err != nil {
		return err
	}

	err = SaveImage(comp.Image, out, c.JPEGQuality)
	if err != nil {
		return err
	}

	return SetWallpaper(out)
}

// PreviewComposite renders into the session temp dir and sets that,
// leaving OutputDir alone. Meant for the interactive loop, where most
// renders are replaced seconds later and cleaned up on exit.
func PreviewComposite(comp *Composite) error {
	if comp == nil || comp.Image == nil {
		return nil
	}

	c, err := GetConfig()
	if err != nil {
		return err
	}

	tdir, err := TempDir()
	if err != nil {
		return err
	}

	f, err := ioutil.TempFile(tdir, "*."+outputFormat)
	if f != nil {
		err = f.Close()
	}
	if err != nil {
		return err
	}

	err = SaveImage(comp.Image, f.Name(), c.JPEGQuality)
	if err != nil {
		return err
	}

	return SetWallpaper(f.Name())
}
