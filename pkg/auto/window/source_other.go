//go:build !linux && !windows && !darwin

package window

// NewSystemSource 其他平台回退到 robotgo
func NewSystemSource() (Source, error) {
	return NewRobotgoSource(), nil
}
