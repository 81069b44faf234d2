package resolver

import (
	"context"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/refs"
)

// RefSource lists the references of a remote repository.
type RefSource interface {
	// Refs returns every tag and branch of repo in the order the remote
	// lists them (oldest tags first on GitHub).
	Refs(ctx context.Context, repo config.Repo) ([]refs.Reference, error)
}
