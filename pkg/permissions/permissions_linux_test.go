//go:build linux

package permissions

import (
	"strings"
	"testing"
)

func TestLinuxDisplayCheck(t *testing.T) {
	orig := lookupEnv
	defer func() { lookupEnv = orig }()

	lookupEnv = func(string) (string, bool) { return "", false }
	status := CheckPermissions()
	if status.Display || status.AllGranted {
		t.Errorf("无 DISPLAY 时不应满足: %+v", status)
	}
	if !strings.Contains(GetPermissionInstructions(status), "DISPLAY") {
		t.Error("说明应提示设置 DISPLAY")
	}
	if err := Require(); err == nil {
		t.Error("无 DISPLAY 时 Require 应返回错误")
	}

	lookupEnv = func(string) (string, bool) { return ":99", true }
	if err := Require(); err != nil {
		t.Errorf("有 DISPLAY 时 Require 不应返回错误: %v", err)
	}
}
