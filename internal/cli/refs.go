package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/refs"
	"github.com/cbout22/ghrefs/internal/resolver"
)

// newRefsCmd creates the `refs` command.
// Usage: ghrefs refs <owner/repo> [--tags|--branches]
func newRefsCmd(opts *globalOptions) *cobra.Command {
	var tagsOnly, branchesOnly bool

	cmd := &cobra.Command{
		Use:   "refs <owner/repo>",
		Short: "List the tags and branches of a repository",
		Long: `Lists every tag and branch of a GitHub repository with the commit it
points to, in the order GitHub returns them.

Example:
  ghrefs refs component/tip --tags`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := config.ParseRepo(args[0])
			if err != nil {
				return err
			}
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			return runRefsWith(cmd.Context(), opts.printer(cmd), client, repo, tagsOnly, branchesOnly)
		},
	}

	cmd.Flags().BoolVar(&tagsOnly, "tags", false, "Only list tags")
	cmd.Flags().BoolVar(&branchesOnly, "branches", false, "Only list branches")
	cmd.MarkFlagsMutuallyExclusive("tags", "branches")

	return cmd
}

// runRefsWith is the testable core of the refs command.
func runRefsWith(ctx context.Context, p *printer, source resolver.RefSource, repo config.Repo, tagsOnly, branchesOnly bool) error {
	all, err := source.Refs(ctx, repo)
	if err != nil {
		return err
	}

	tags, branches := refs.Partition(all)
	var shown []refs.Reference
	switch {
	case tagsOnly:
		shown = tags
	case branchesOnly:
		shown = branches
	default:
		shown = all
	}

	if len(shown) == 0 {
		p.warn("No matching refs in %s.", repo)
		return nil
	}

	for _, r := range shown {
		p.ref(r)
	}
	fmt.Fprintf(p.w, "\n%d tag(s), %d branch(es)\n", len(tags), len(branches))
	return nil
}
