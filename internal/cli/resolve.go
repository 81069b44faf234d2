package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/resolver"
)

// newResolveCmd creates the `resolve` command.
// Usage: ghrefs resolve <owner/repo> <constraint>
func newResolveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <owner/repo> <constraint>",
		Short: "Resolve a version range or branch name to a ref",
		Long: `Resolves a semver range (e.g. 1.x, ^2.1.0, ">=1.2.0 <2.0.0") to a tag, or a
literal branch name to that branch.

Tags are scanned newest first and the first one satisfying the range wins.
When no tag matches, a branch named exactly like the constraint is used.

Example:
  ghrefs resolve component/tip 1.x`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return opts.completeRefs(cmd, args[0], toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := config.ParseRepo(args[0])
			if err != nil {
				return err
			}
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			return runResolveWith(cmd.Context(), opts.printer(cmd), resolver.New(client), repo, args[1])
		},
	}
}

// runResolveWith is the testable core of the resolve command.
func runResolveWith(ctx context.Context, p *printer, res *resolver.Resolver, repo config.Repo, constraint string) error {
	ref, err := res.Resolve(ctx, repo, constraint)
	if err != nil {
		return fmt.Errorf("resolving %s@%s: %w", repo, constraint, err)
	}
	if ref == nil {
		return fmt.Errorf("no reference in %s matches %q", repo, constraint)
	}
	p.ref(*ref)
	return nil
}
