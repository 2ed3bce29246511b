package ports

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// ProgramStore defines the interface for keeping named programs.
// Programs are stored by Program.Name; saving an existing name replaces it.
type ProgramStore interface {
	// Save persists the program under p.Name.
	Save(ctx context.Context, p *domain.Program) error

	// Load retrieves a program by name.
	// Returns domain.ErrProgramNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Program, error)

	// Delete removes a program. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}

// ValidateName rejects names that cannot be used as a storage key or file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\:`) || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return nil
}
