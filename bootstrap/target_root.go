package bootstrap

import (
	"fmt"
	"strings"
)

// TargetRoot selects where, relative to the data root, the target file lives.
type TargetRoot int

const (
	// AppPrivate places the file in an application-private subdirectory:
	// {DataRoot}/{AppSubpath}/{TargetFileName}.
	AppPrivate TargetRoot = iota + 1

	// SharedParent places the file one level above the application-private
	// subdirectory, directly in the data root: {DataRoot}/{TargetFileName}.
	SharedParent
)

func (t TargetRoot) String() string {
	switch t {
	case AppPrivate:
		return "app-private"
	case SharedParent:
		return "shared-parent"
	default:
		return fmt.Sprintf("TargetRoot(%d)", int(t))
	}
}

// Valid reports whether t is a known strategy.
func (t TargetRoot) Valid() bool {
	return t == AppPrivate || t == SharedParent
}

// ParseTargetRoot accepts "app-private" or "shared-parent". Case, underscores
// and the CamelCase spellings are tolerated.
func ParseTargetRoot(s string) (TargetRoot, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "", "-", "", " ", "").Replace(norm)
	switch norm {
	case "appprivate", "private":
		return AppPrivate, nil
	case "sharedparent", "shared", "parent":
		return SharedParent, nil
	default:
		return 0, fmt.Errorf("unknown target-root strategy %q (want app-private or shared-parent)", s)
	}
}
