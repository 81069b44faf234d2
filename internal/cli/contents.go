package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/github"
	"github.com/cbout22/ghrefs/internal/writer"
)

type contentsOptions struct {
	raw    bool
	output string
	force  bool
}

// newContentsCmd creates the `contents` command.
// Usage: ghrefs contents <owner/repo> <ref> <path> [--raw] [--output FILE]
func newContentsCmd(opts *globalOptions) *cobra.Command {
	var co contentsOptions

	cmd := &cobra.Command{
		Use:   "contents <owner/repo> <ref> <path>",
		Short: "Print a file from a repository at a ref",
		Long: `Fetches a file at the given tag, branch or commit and writes it to stdout,
or to --output.

By default the contents API is used; --raw streams the file from
raw.githubusercontent.com instead, which also works for large files.

Example:
  ghrefs contents component/tip 1.0.0 component.json`,
		Args: cobra.ExactArgs(3),
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
			return runContentsWith(cmd.Context(), cmd.OutOrStdout(), client, &writer.OSFileWriter{}, repo, args[1], args[2], co)
		},
	}

	cmd.Flags().BoolVar(&co.raw, "raw", false, "Stream the file from the raw content host")
	cmd.Flags().StringVarP(&co.output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&co.force, "force", false, "Overwrite --output if it exists")

	return cmd
}

// runContentsWith is the testable core of the contents command.
func runContentsWith(ctx context.Context, out io.Writer, client *github.Client, fs writer.FileWriter, repo config.Repo, ref, path string, co contentsOptions) error {
	var body io.Reader
	if co.raw {
		rc, err := client.Stream(ctx, repo, ref, path)
		if err != nil {
			return err
		}
		defer rc.Close()
		body = rc
	} else {
		fc, err := client.Contents(ctx, repo, ref, path)
		if err != nil {
			return err
		}
		data, err := fc.Decode()
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	if co.output != "" {
		return writer.Save(fs, co.output, body, co.force)
	}

	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
