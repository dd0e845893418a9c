package flow

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// ClickLogHeader 点击记录文件的表头
var ClickLogHeader = []string{"image_path", "press_x", "press_y", "release_x", "release_y", "reasoning"}

// ClickRecord 一次完整点击（按下 + 释放），坐标相对于按下时的窗口
type ClickRecord struct {
	ImagePath string
	Press     auto.Point
	Release   auto.Point
	Reasoning string
}

func (r ClickRecord) row() []string {
	return []string{
		r.ImagePath,
		strconv.Itoa(r.Press.X),
		strconv.Itoa(r.Press.Y),
		strconv.Itoa(r.Release.X),
		strconv.Itoa(r.Release.Y),
		r.Reasoning,
	}
}

// CSVLog 只追加的点击记录文件
type CSVLog struct {
	mu   sync.Mutex
	path string
}

// OpenCSVLog 打开点击记录文件，文件不存在或为空时写入表头
func OpenCSVLog(path string) (*CSVLog, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("创建目录失败: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("打开记录文件失败: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("读取记录文件信息失败: %w", err)
	}
	if info.Size() == 0 {
		if err := writeRows(f, ClickLogHeader); err != nil {
			return nil, err
		}
	}
	return &CSVLog{path: path}, nil
}

// Path 文件路径
func (l *CSVLog) Path() string {
	return l.path
}

// Append 追加一行记录
func (l *CSVLog) Append(rec ClickRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("打开记录文件失败: %w", err)
	}
	defer f.Close()

	return writeRows(f, rec.row())
}

func writeRows(w io.Writer, rows ...[]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("写入记录失败: %w", err)
	}
	return nil
}

// ReadClickLog 读取点击记录（不含表头）
func ReadClickLog(path string) ([]ClickRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开记录文件失败: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(ClickLogHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析记录文件失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]ClickRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var nums [4]int
		for j := range nums {
			nums[j], err = strconv.Atoi(row[j+1])
			if err != nil {
				return nil, fmt.Errorf("第 %d 行坐标无效: %w", i+2, err)
			}
		}
		records = append(records, ClickRecord{
			ImagePath: row[0],
			Press:     auto.Point{X: nums[0], Y: nums[1]},
			Release:   auto.Point{X: nums[2], Y: nums[3]},
			Reasoning: row[5],
		})
	}
	return records, nil
}
