package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotPackage marks an input that is not a zip archive.
var ErrNotPackage = errors.New("not a zip package")

// zip signatures: the first local file header of a populated archive and
// the end-of-central-directory record of an empty one.
var zipSignatures = [][]byte{
	[]byte("PK\x03\x04"),
	[]byte("PK\x05\x06"),
}

// checkPackage verifies the input exists and starts with a zip signature
// before any extraction work begins.
func checkPackage(input string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var sig [4]byte
	if _, err := io.ReadFull(f, sig[:]); err != nil {
		return fmt.Errorf("%s: %w", input, ErrNotPackage)
	}
	for _, want := range zipSignatures {
		if bytes.Equal(sig[:], want) {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", input, ErrNotPackage)
}

// entry records one archive entry's identity so the output can reproduce
// the input's exact entry set, order, and compression method.
type entry struct {
	name   string
	method uint16
	dir    bool
}

// stage extracts the package into a fresh temporary directory and returns
// the directory along with the archive's entry list in archive order.
func stage(input string) (string, []entry, error) {
	zr, err := zip.OpenReader(input)
	if err != nil {
		return "", nil, fmt.Errorf("open package: %w", err)
	}
	defer zr.Close()

	dir, err := os.MkdirTemp("", "decktint-*")
	if err != nil {
		return "", nil, fmt.Errorf("create staging dir: %w", err)
	}

	entries := make([]entry, 0, len(zr.File))
	for _, f := range zr.File {
		e := entry{name: f.Name, method: f.Method, dir: f.FileInfo().IsDir()}
		entries = append(entries, e)

		dest, err := stagePath(dir, f.Name)
		if err != nil {
			os.RemoveAll(dir)
			return "", nil, err
		}
		if e.dir {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				os.RemoveAll(dir)
				return "", nil, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			os.RemoveAll(dir)
			return "", nil, err
		}
		if err := extractFile(f, dest); err != nil {
			os.RemoveAll(dir)
			return "", nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}

	return dir, entries, nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// stagePath joins an entry name under root, rejecting names that escape it.
func stagePath(root, name string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(name))
	if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry escapes package root: %s", name)
	}
	return dest, nil
}

// repack assembles the output archive from the staged tree, writing entries
// in the input's order with the input's compression methods. The archive is
// built next to the destination and renamed into place on success, so a
// failed run never leaves a partial output behind.
func repack(staging string, entries []entry, output string) error {
	tmp := output + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return err
	}

	zw := zip.NewWriter(f)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: e.method}
		if e.dir {
			hdr.Method = zip.Store
			if _, err := zw.CreateHeader(hdr); err != nil {
				return fail(fmt.Errorf("write entry %s: %w", e.name, err))
			}
			continue
		}

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return fail(fmt.Errorf("write entry %s: %w", e.name, err))
		}
		src, err := stagePath(staging, e.name)
		if err != nil {
			return fail(err)
		}
		content, err := os.ReadFile(src)
		if err != nil {
			return fail(fmt.Errorf("read staged %s: %w", e.name, err))
		}
		if _, err := w.Write(content); err != nil {
			return fail(fmt.Errorf("write entry %s: %w", e.name, err))
		}
	}

	if err := zw.Close(); err != nil {
		return fail(fmt.Errorf("finish archive: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close output: %w", err)
	}
	return os.Rename(tmp, output)
}
