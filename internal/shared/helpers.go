// Package shared provides naming helpers used across the modular
// codebase.
package shared

import (
	"fmt"
	"strings"
)

// MethodPrefix is the naming convention tying a provider method to
// the resource it provides.
const MethodPrefix = "provide_"

// MethodName derives the conventional provider method name for a
// resource.
func MethodName(resource string) string {
	return MethodPrefix + resource
}

// ResourceOf extracts the resource name from a conventional provider
// method name. The second return is false when the name does not
// follow the convention.
func ResourceOf(method string) (string, bool) {
	if !strings.HasPrefix(method, MethodPrefix) {
		return "", false
	}
	resource := strings.TrimPrefix(method, MethodPrefix)
	if resource == "" {
		return "", false
	}
	return resource, true
}

// Qualify joins an owner (module or provider) and a member name into
// a qualified display name. An empty owner yields the bare name.
func Qualify(owner string, name string) string {
	if strings.TrimSpace(owner) == "" {
		return name
	}
	return fmt.Sprintf("%s.%s", owner, name)
}
