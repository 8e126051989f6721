package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// renderYAML writes any result record as YAML to stdout for
// machine-readable consumption.
func renderYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}
