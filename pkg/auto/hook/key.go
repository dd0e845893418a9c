package hook

import (
	"fmt"
	"slices"
	"strings"

	gohook "github.com/robotn/gohook"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// 虚拟键码（libuiohook VC_* 编号，跨平台一致）
const (
	vcTab         uint16 = 0x000F
	vcSpace       uint16 = 0x0039
	vcShiftL      uint16 = 0x002A
	vcShiftR      uint16 = 0x0036
	vcControlL    uint16 = 0x001D
	vcControlR    uint16 = 0x0E1D
	vcAltL        uint16 = 0x0038
	vcAltR        uint16 = 0x0E38
	vcMetaL       uint16 = 0x0E5B
	vcMetaR       uint16 = 0x0E5C
	vcUndefined   uint16 = 0x0000
	charUndefined rune   = 0xFFFF
)

var specialKeys = map[string][]uint16{
	"shift":   {vcShiftL, vcShiftR},
	"ctrl":    {vcControlL, vcControlR},
	"control": {vcControlL, vcControlR},
	"alt":     {vcAltL, vcAltR},
	"option":  {vcAltL, vcAltR},
	"cmd":     {vcMetaL, vcMetaR},
	"command": {vcMetaL, vcMetaR},
	"space":   {vcSpace},
	"tab":     {vcTab},
}

// Key 已解析的热键，左右修饰键视为同一个键
type Key struct {
	Name  string
	Codes []uint16
	Char  rune
}

// ParseKey 解析热键名称：shift、ctrl/control、alt/option、cmd/command、space、tab 或单个字符
func ParseKey(token string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(token))
	if codes, ok := specialKeys[name]; ok {
		return Key{Name: name, Codes: codes}, nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Key{}, fmt.Errorf("%w: 不支持的热键 %q", auto.ErrInvalidArgument, token)
	}

	code, ok := gohook.Keycode[name]
	if !ok || code == vcUndefined {
		return Key{}, fmt.Errorf("%w: 无法映射的热键字符 %q", auto.ErrInvalidArgument, token)
	}
	return Key{Name: name, Codes: []uint16{code}, Char: runes[0]}, nil
}

// IsZero 是否为未设置的键
func (k Key) IsZero() bool {
	return len(k.Codes) == 0
}

// Matches 键盘事件是否来自该键
func (k Key) Matches(ev Event) bool {
	if k.IsZero() || !ev.Kind.IsKey() {
		return false
	}
	if slices.Contains(k.Codes, ev.Keycode) {
		return true
	}
	return k.Char != 0 && ev.Keychar != charUndefined && ev.Keychar == k.Char
}

func (k Key) String() string {
	if k.Char != 0 {
		return fmt.Sprintf("%q", k.Char)
	}
	return "<" + k.Name + ">"
}
