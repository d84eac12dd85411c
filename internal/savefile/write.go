package savefile

import (
	"os"
	"path/filepath"

	"GallicWars/modules/kit/errx"
)

// WriteAtomic 同目录临时文件 + rename 落盘，失败不会留下半成品；
// 残留的临时文件在下次写入前清理。
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errx.ErrIOFailure.WithCause(err).WithData("path", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errx.ErrIOFailure.WithCause(err).WithData("path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errx.ErrIOFailure.WithCause(err).WithData("path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errx.ErrIOFailure.WithCause(err).WithData("path", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errx.ErrIOFailure.WithCause(err).WithData("path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errx.ErrIOFailure.WithCause(err).WithData("path", path)
	}
	return nil
}
