package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a supported archive next to it and removes the
// original. Returns "" for files that are not archives.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackGzipArchive(filePath)
	case ".lz4":
		return unpackLZ4Archive(filePath)
	}
	return "", nil
}

// unpackZipArchive extracts the largest file in the archive, uploads
// usually carry one data file plus junk.
func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", nil
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if err := writeAndRemove(destPath, rc, filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackGzipArchive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	gr, err := gzip.NewReader(file)
	if err != nil {
		return "", err
	}
	defer gr.Close()

	destPath := strings.TrimSuffix(filePath, ".gz")
	if err := writeAndRemove(destPath, gr, filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackLZ4Archive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	destPath := strings.TrimSuffix(filePath, ".lz4")
	if err := writeAndRemove(destPath, lz4.NewReader(file), filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

// writeAndRemove streams the uncompressed content to destPath and drops
// the original archive on success.
func writeAndRemove(destPath string, src io.Reader, archivePath string) error {
	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, src); err != nil {
		return err
	}
	return os.Remove(archivePath)
}
