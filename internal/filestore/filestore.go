// Package filestore wraps the fileserver package with a recipe-image
// oriented interface.
package filestore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Parker-ink/foodgram-project-react/internal/fileserver"
)

const recipesDir = "recipes"

const DefaultURLPrefix = "/media"

type FileStoreInterface interface {
	WriteRecipeImage(name, suffix string, data []byte) (urlPath string, n int, err error)
	DeleteURLPath(urlpath string) error
}

type FileStore struct {
	urlPathPrefix string
	fs            fileserver.FileServerInterface
}

var _ FileStoreInterface = (FileStore)(FileStore{})

func New(baseDirectory, urlPathPrefix string) FileStore {
	return FileStore{
		urlPathPrefix: urlPathPrefix,
		fs:            fileserver.New(baseDirectory),
	}
}

// WriteRecipeImage stores a recipe image under the given name and returns
// the URL path it is served under.
func (f FileStore) WriteRecipeImage(name, suffix string, data []byte) (urlPath string, n int, err error) {
	path := recipeImagePath(name, suffix)
	fullpath, n, err := f.fs.Write(path, data)
	if err != nil {
		return "", n, err
	}
	return absPathToURLPath(fullpath, f.fs.BaseDirectory(), f.urlPathPrefix), n, nil
}

func (f FileStore) DeleteURLPath(urlpath string) error {
	return f.fs.Delete(trimURLPathPrefix(urlpath, f.urlPathPrefix))
}

func recipeImagePath(name, suffix string) string {
	return filepath.Join(recipesDir, fmt.Sprintf("%s%s", name, suffix))
}

func absPathToURLPath(fullpath string, baseDir string, prefix string) (urlpath string) {
	pathPrefix := strings.Trim(prefix, "/")
	relPath := strings.TrimLeft(trimBaseDir(fullpath, baseDir), "/")
	return "/" + pathPrefix + "/" + relPath
}

func trimBaseDir(path string, baseDir string) string {
	path = filepath.Clean(path)
	baseDir = filepath.Clean(baseDir)
	return strings.TrimPrefix(path, baseDir)
}

func trimURLPathPrefix(path string, prefix string) string {
	urlpath := strings.Trim(path, "/")
	pathPrefix := strings.Trim(prefix, "/")
	urlpath = strings.TrimPrefix(urlpath, pathPrefix)
	return strings.TrimLeft(urlpath, "/")
}
