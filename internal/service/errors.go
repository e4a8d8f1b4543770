package service

import (
	"errors"
	"strings"

	"ClubHub/internal/pkg"

	"gorm.io/gorm"
)

// storeError maps a repository error onto the error taxonomy. notFound and
// conflict are the user-facing messages for the two recoverable cases.
func storeError(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return pkg.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkg.Conflict(conflict)
	default:
		return pkg.Persistence(err)
	}
}

// required returns a validation error naming every blank field, or nil.
func required(fields ...[2]string) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return pkg.Validation(missing[0] + " is required.")
	}
	return pkg.Validation(strings.Join(missing[:len(missing)-1], ", ") + " and " + missing[len(missing)-1] + " are required.")
}

func field(name, value string) [2]string { return [2]string{name, value} }
