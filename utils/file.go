package utils

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// LocalImageStore writes uploads under Dir and serves them from URLPrefix.
// Used when no R2 bucket is configured.
type LocalImageStore struct {
	Dir       string // e.g. "uploads"
	URLPrefix string // e.g. "/uploads"
}

func (s *LocalImageStore) Upload(_ context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	dest := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := SaveFile(fileHeader, dest); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + filepath.ToSlash(key), nil
}

// SaveFile saves the uploaded file to the given destination path
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	return err
}
