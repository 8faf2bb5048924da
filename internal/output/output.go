// Package output owns the generated site directory. Every file written
// through Dir is hashed so a run can report one digest for the whole tree.
package output

import (
	"flowweb/internal/domain/build"
	"flowweb/internal/domain/site"
	"fmt"
	"github.com/otiai10/copy"
	"go.uber.org/zap"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// DirName is the output directory created below the working directory.
const DirName = "output"

type Dir struct {
	root string
	fp   *build.Fingerprint
	log  *zap.Logger
}

func New(root string, log *zap.Logger) *Dir {
	return &Dir{root: root, fp: build.NewFingerprint(), log: log}
}

func (d *Dir) Root() string { return d.root }

func (d *Dir) Fingerprint() *build.Fingerprint { return d.fp }

// Reset removes the output directory with everything in it and creates it
// again empty.
func (d *Dir) Reset() error {
	if err := os.RemoveAll(d.root); err != nil {
		return fmt.Errorf("remove %s: %w", d.root, err)
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", d.root, err)
	}
	d.fp = build.NewFingerprint()
	return nil
}

// Write stores data at the slash separated path rel below the root,
// creating parent directories.
func (d *Dir) Write(rel string, data []byte) error {
	full, err := d.path(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	d.fp.Record(rel, data)
	d.log.Debug("wrote file", zap.String("path", rel), zap.Int("bytes", len(data)))
	return nil
}

func (d *Dir) WriteRoute(r site.Route, data []byte) error {
	return d.Write(r.OutPath, data)
}

// CopyTree copies the directory src into dstRel below the root. An empty
// dstRel copies the contents of src into the root itself.
func (d *Dir) CopyTree(src, dstRel string) error {
	dst := d.root
	if dstRel != "" {
		var err error
		if dst, err = d.path(dstRel); err != nil {
			return err
		}
	}
	if err := copy.Copy(src, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
	}); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	n := 0
	err := filepath.WalkDir(src, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		d.fp.Record(path.Join(dstRel, filepath.ToSlash(rel)), data)
		n++
		return nil
	})
	if err != nil {
		return fmt.Errorf("hash %s: %w", src, err)
	}
	d.log.Debug("copied tree", zap.String("src", src), zap.String("dst", dstRel), zap.Int("files", n))
	return nil
}

func (d *Dir) path(rel string) (string, error) {
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("output path %q escapes %s", rel, d.root)
	}
	return filepath.Join(d.root, local), nil
}
