package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/envup/pkg/errors"
)

// extractTarGz unpacks a .tar.gz archive into dest.
func extractTarGz(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", archivePath)
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "%s is not gzip", archivePath)
	}
	defer func() { _ = gz.Close() }()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dest)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrFetchFailed, "corrupt tar in %s", archivePath)
		}

		path, err := securePath(dest, hdr.Name)
		if err != nil {
			return errors.Wrap(err, errors.ErrFetchFailed, "unsafe archive")
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, os.FileMode(hdr.Mode)); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", path)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", path)
			}
			if err := os.Symlink(hdr.Linkname, path); err != nil && !os.IsExist(err) {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", path)
			}
		case tar.TypeReg:
			if err := writeEntry(path, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}
}

// extractZip unpacks a .zip archive into dest.
func extractZip(archivePath, dest string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "%s is not a zip archive", archivePath)
	}
	defer func() { _ = r.Close() }()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dest)
	}

	for _, entry := range r.File {
		path, err := securePath(dest, entry.Name)
		if err != nil {
			return errors.Wrap(err, errors.ErrFetchFailed, "unsafe archive")
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(path, entry.Mode()); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", path)
			}
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return errors.Wrapf(err, errors.ErrFetchFailed, "corrupt zip entry %s", entry.Name)
		}
		err = writeEntry(path, rc, entry.Mode())
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(path string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", path)
	}
	perm := mode.Perm()
	if perm == 0 {
		// Some zip writers emit entries without mode bits.
		perm = 0644
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}
