// Package fileserver contains utilities for serving files from disk.
package fileserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const directoryPerms = 0o755

type FileServerInterface interface {
	Write(path string, data []byte) (fullpath string, n int, err error)
	Delete(path string) error
	Exists(path string) (bool, error)
	BaseDirectory() string
}

type FileServer struct {
	baseDir string
}

var _ FileServerInterface = (*FileServer)(nil)

func New(baseDir string) *FileServer {
	return &FileServer{
		baseDir: baseDir,
	}
}

func (f *FileServer) BaseDirectory() string {
	return f.baseDir
}

func (f *FileServer) Write(path string, data []byte) (fullpath string, n int, err error) {
	fullpath = filepath.Join(f.baseDir, path)
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return "", 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err = file.Write(data)
	if err != nil {
		return "", 0, fmt.Errorf("writing file: %w", err)
	}

	return fullpath, n, nil
}

func (f *FileServer) Delete(path string) error {
	return os.Remove(filepath.Join(f.baseDir, path))
}

func (f *FileServer) Exists(path string) (bool, error) {
	_, err := os.Stat(filepath.Join(f.baseDir, path))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
