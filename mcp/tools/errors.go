package tools

import "fmt"

// errUnsupported reports a value the generator has no template branch for.
// The dispatcher's enum check normally prevents this.
func errUnsupported(param, value string) error {
	return fmt.Errorf("unsupported %s %q", param, value)
}
