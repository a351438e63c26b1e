package bootstrap

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which bootstrap step failed.
type Kind int

const (
	// EnvironmentResolution: the host could not name a usable per-user data root.
	EnvironmentResolution Kind = iota + 1
	// DirectoryCreation: the target directory chain could not be created.
	DirectoryCreation
	// ResourceResolution: the seed's logical name has no mapping in the payload.
	ResourceResolution
	// Copy: the seed could not be copied into place.
	Copy
)

// Error codes for programmatic handling, one per Kind.
const (
	ErrCodeEnvironmentResolution = "ENVIRONMENT_RESOLUTION_FAILURE"
	ErrCodeDirectoryCreation     = "DIRECTORY_CREATION_FAILURE"
	ErrCodeResourceResolution    = "RESOURCE_RESOLUTION_FAILURE"
	ErrCodeCopy                  = "COPY_FAILURE"
)

func (k Kind) String() string {
	switch k {
	case EnvironmentResolution:
		return "environment resolution"
	case DirectoryCreation:
		return "directory creation"
	case ResourceResolution:
		return "resource resolution"
	case Copy:
		return "copy"
	default:
		return "unknown"
	}
}

// Code returns the stable error code for k.
func (k Kind) Code() string {
	switch k {
	case EnvironmentResolution:
		return ErrCodeEnvironmentResolution
	case DirectoryCreation:
		return ErrCodeDirectoryCreation
	case ResourceResolution:
		return ErrCodeResourceResolution
	case Copy:
		return ErrCodeCopy
	default:
		return ""
	}
}

// Error is returned by Initialize. Path names the filesystem location the
// failing step was working on, Source the resolved seed path, and Resource the
// logical seed name, each when known.
type Error struct {
	Kind     Kind
	Path     string
	Source   string
	Resource string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" failed")
	if e.Resource != "" {
		fmt.Fprintf(&b, " for resource %q", e.Resource)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " from %s", e.Source)
	}
	if e.Path != "" {
		if e.Source != "" {
			fmt.Fprintf(&b, " to %s", e.Path)
		} else {
			fmt.Fprintf(&b, " at %s", e.Path)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the error code of the failed step.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// Action returns an instruction for resolving the failure.
func (e *Error) Action() string {
	switch e.Kind {
	case EnvironmentResolution:
		return "Set INVENTORY_DATA_ROOT to an absolute, writable directory"
	case DirectoryCreation:
		return "Check that the data directory's parent exists, is a directory, and is writable by the current user"
	case ResourceResolution:
		return "Reinstall the application or set INVENTORY_RESOURCE_DIR to the directory containing the seed file"
	case Copy:
		return "Check free disk space and permissions on the data directory, then restart"
	default:
		return ""
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var bootErr *Error
	if errors.As(err, &bootErr) {
		return bootErr.Kind
	}
	return 0
}

// IsKind reports whether err is a bootstrap *Error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// ErrNoMapping is wrapped by ResourceResolution errors when the locator has
// no entry for the seed's logical name.
var ErrNoMapping = errors.New("no resource mapping")

// ErrChecksumMismatch is wrapped by Copy errors when the written bytes do not
// hash to the bytes read from the seed.
var ErrChecksumMismatch = errors.New("written file checksum does not match seed")
