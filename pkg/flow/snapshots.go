package flow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zoeyai/desktopapi/pkg/auto/screen"
)

// SnapshotStore 按截图时间命名保存截图的目录
type SnapshotStore struct {
	dir    string
	format string
	stamp  bool
}

// NewSnapshotStore 创建目录（如不存在）；stamp 为 true 时在截图上标注截图时间
func NewSnapshotStore(dir, format string, stamp bool) (*SnapshotStore, error) {
	f, err := screen.NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建截图目录失败: %w", err)
	}
	return &SnapshotStore{dir: dir, format: f, stamp: stamp}, nil
}

// Dir 目录
func (s *SnapshotStore) Dir() string {
	return s.dir
}

// Save 保存截图，返回文件路径
func (s *SnapshotStore) Save(shot *screen.Shot) (string, error) {
	if shot == nil || shot.Image == nil {
		return "", fmt.Errorf("截图为空")
	}

	img := shot.Image
	if s.stamp {
		stamped, err := screen.Stamp(img, shot.TakenAt.Format("2006-01-02 15:04:05.000"))
		if err != nil {
			return "", err
		}
		img = stamped
	}

	path := filepath.Join(s.dir, SnapshotName(shot.TakenAt, s.format))
	if err := screen.Save(img, path); err != nil {
		return "", err
	}
	return path, nil
}

// SnapshotName 截图文件名：snap_<YYYYmmdd_HHMMSS_微秒>.<ext>
func SnapshotName(t time.Time, format string) string {
	return fmt.Sprintf("snap_%s_%06d.%s", t.Format("20060102_150405"), t.Nanosecond()/1000, extension(format))
}

func extension(format string) string {
	if format == screen.FormatJPEG {
		return "jpg"
	}
	return format
}
