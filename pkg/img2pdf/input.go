package img2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// dirExts are matched in this order when listing a directory.
var dirExts = []string{".jpg", ".jpeg", ".png"}

// Input is something that resolves to a list of image paths.
type Input interface {
	paths() ([]string, error)
}

// SinglePath is exactly one image, whatever its extension.
type SinglePath string

// DirectoryPath is a directory whose .jpg, .jpeg and .png files are converted.
type DirectoryPath string

// PathList is an explicit list of images.
type PathList []string

func (p SinglePath) paths() ([]string, error) {
	return []string{string(p)}, nil
}

func (p PathList) paths() ([]string, error) {
	return append([]string{}, p...), nil
}

func (d DirectoryPath) paths() ([]string, error) {
	root := string(d)
	des, err := godirwalk.ReadDirents(root, nil)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	found := []string{}
	for _, ext := range dirExts {
		for _, de := range des {
			name := de.Name()
			if name[0] == '.' || !strings.HasSuffix(name, ext) || de.IsDir() {
				continue
			}

			klog.V(1).Infof("found %s", name)
			found = append(found, filepath.Join(root, name))
		}
	}

	return found, nil
}

// Matches reports whether a directory listing picks up a file called name.
func Matches(name string) bool {
	if name == "" || name[0] == '.' {
		return false
	}
	for _, ext := range dirExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ParseInput returns a DirectoryPath if path is a directory, otherwise a SinglePath.
func ParseInput(path string) Input {
	st, err := os.Stat(path)
	if err == nil && st.IsDir() {
		return DirectoryPath(path)
	}
	return SinglePath(path)
}

// Resolve returns the image paths for in, sorted by path.
func Resolve(in Input) ([]string, error) {
	ps, err := in.paths()
	if err != nil {
		return nil, err
	}

	sort.Strings(ps)
	return ps, nil
}
