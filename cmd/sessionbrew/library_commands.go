package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/library"
	"github.com/mmcdole/sessionbrew/internal/search"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect the content library",
	}

	libraryCmd.AddCommand(newLibraryTreeCommand(ctx))
	libraryCmd.AddCommand(newLibraryResolveCommand(ctx))
	libraryCmd.AddCommand(newLibraryFindCommand(ctx))
	return libraryCmd
}

func newLibraryTreeCommand(ctx *commandContext) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the library tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.libraryService()
			if err != nil {
				return err
			}
			tree := svc.Tree
			if refresh {
				tree = svc.Refresh
			}
			nodes, err := tree(cmd.Context())
			if err != nil {
				return fmt.Errorf("scan library: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(nodes) == 0 {
				fmt.Fprintf(out, "No content under %s\n", svc.Root())
				return nil
			}
			fmt.Fprintln(out, svc.Root())
			fmt.Fprintln(out, renderTree(nodes))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rescan instead of reading the cache")
	return cmd
}

func newLibraryResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "List the files a dropped path would add",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openStore()
			if err != nil {
				return err
			}
			resolver := library.NewResolver(cache, ctx.ensureLogger())
			files, err := resolver.ResolvePath(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "Nothing to add")
				return nil
			}
			rows := make([][]string, 0, len(files))
			for i, f := range files {
				rows = append(rows, []string{strconv.Itoa(i + 1), f.Name, f.Type, f.Path})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Name", "Type", "Path"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newLibraryFindCommand(ctx *commandContext) *cobra.Command {
	var filesOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-find library entries by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.libraryService()
			if err != nil {
				return err
			}
			nodes, err := svc.Tree(cmd.Context())
			if err != nil {
				return fmt.Errorf("scan library: %w", err)
			}

			out := cmd.OutOrStdout()
			results := search.Rank(nodes, args[0], filesOnly, limit)
			if len(results) == 0 {
				fmt.Fprintf(out, "No matches for %q\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				kind := r.Node.Type
				if r.Node.IsFolder() {
					kind = "folder"
				}
				rows = append(rows, []string{r.Node.Label, kind, r.Location(), strconv.Itoa(r.Score)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Type", "Folder", "Distance"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&filesOnly, "files", false, "Only match files")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results (0 = all)")
	return cmd
}

func (c *commandContext) libraryService() (*library.Service, error) {
	cache, err := c.openStore()
	if err != nil {
		return nil, err
	}
	return library.NewService(c.configValue().Library.Path, cache, c.ensureLogger()), nil
}

// renderTree draws nodes as an indented list, folders before their children
func renderTree(nodes []domain.LibraryNode) string {
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)

	var walk func(nodes []domain.LibraryNode)
	walk = func(nodes []domain.LibraryNode) {
		for _, n := range nodes {
			label := n.Label
			if !n.IsFolder() {
				label = fmt.Sprintf("%s (%s)", n.Label, n.Type)
			}
			lw.AppendItem(label)
			if len(n.Children) > 0 {
				lw.Indent()
				walk(n.Children)
				lw.UnIndent()
			}
		}
	}
	walk(nodes)
	return lw.Render()
}
