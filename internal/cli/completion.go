package cli

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/github"
	"github.com/cbout22/ghrefs/internal/refs"
	"github.com/cbout22/ghrefs/internal/resolver"
)

// completionTimeout keeps a slow API from blocking the shell.
const completionTimeout = time.Second

// completeRefs suggests the tags and branches of repoArg that start with
// toComplete.
func (o *globalOptions) completeRefs(cmd *cobra.Command, repoArg, toComplete string) ([]string, cobra.ShellCompDirective) {
	repo, err := config.ParseRepo(repoArg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg.Timeout = config.Duration{Duration: completionTimeout}

	client := github.New(cfg, github.WithLogger(hclog.NewNullLogger()))
	return refCompletions(cmd.Context(), client, repo, toComplete)
}

func refCompletions(ctx context.Context, source resolver.RefSource, repo config.Repo, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		ctx = context.Background()
	}
	all, err := source.Refs(ctx, repo)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Newest tags first, then branches.
	tags, branches := refs.Partition(all)
	ordered := append(refs.Reverse(tags), branches...)

	var completions []string
	for _, r := range ordered {
		if strings.HasPrefix(r.Name, toComplete) {
			completions = append(completions, formatCompletionLine(r.Name, describe(r)))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func describe(r refs.Reference) string {
	switch r.Kind {
	case refs.Tag:
		return "Tag " + r.ShortSHA()
	case refs.Branch:
		return "Branch " + r.ShortSHA()
	}
	return r.ShortSHA()
}

// formatCompletionLine renders a cobra completion with a description.
func formatCompletionLine(value, description string) string {
	return value + "\t" + description
}
