package main

import (
	"io"

	"gopkg.in/yaml.v3"
)

// printYAML 以 YAML 输出结果
func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
