package flow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

func TestCSVLogHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "log.csv")

	log, err := OpenCSVLog(path)
	if err != nil {
		t.Fatalf("OpenCSVLog 失败: %v", err)
	}
	if err := log.Append(ClickRecord{ImagePath: "a.png", Press: auto.Point{X: 1, Y: 2}, Release: auto.Point{X: 3, Y: 4}}); err != nil {
		t.Fatalf("Append 失败: %v", err)
	}

	again, err := OpenCSVLog(path)
	if err != nil {
		t.Fatalf("再次打开失败: %v", err)
	}
	if err := again.Append(ClickRecord{ImagePath: "b, with comma.png", Reasoning: "second"}); err != nil {
		t.Fatalf("Append 失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("应有 1 行表头和 2 行记录, 实际:\n%s", data)
	}
	if lines[0] != "image_path,press_x,press_y,release_x,release_y,reasoning" {
		t.Errorf("表头不正确: %s", lines[0])
	}
	if lines[1] != "a.png,1,2,3,4," {
		t.Errorf("记录不正确: %s", lines[1])
	}

	recs, err := ReadClickLog(path)
	if err != nil {
		t.Fatalf("ReadClickLog 失败: %v", err)
	}
	if len(recs) != 2 || recs[1].ImagePath != "b, with comma.png" || recs[1].Reasoning != "second" {
		t.Errorf("读取结果不正确: %+v", recs)
	}
}

func TestCSVLogHeaderForEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("创建空文件失败: %v", err)
	}

	log, err := OpenCSVLog(path)
	if err != nil {
		t.Fatalf("OpenCSVLog 失败: %v", err)
	}
	if err := log.Append(ClickRecord{ImagePath: "a.png", Press: auto.Point{X: 1, Y: 2}, Release: auto.Point{X: 3, Y: 4}}); err != nil {
		t.Fatalf("Append 失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != strings.Join(ClickLogHeader, ",") {
		t.Errorf("空文件应补写表头, 实际:\n%s", data)
	}

	recs, err := ReadClickLog(path)
	if err != nil || len(recs) != 1 {
		t.Errorf("应读到 1 条记录, 实际 %+v, %v", recs, err)
	}
}

func TestReadClickLogInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := strings.Join(ClickLogHeader, ",") + "\nx.png,a,2,3,4,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if _, err := ReadClickLog(path); err == nil {
		t.Error("非数字坐标应返回错误")
	}
}
