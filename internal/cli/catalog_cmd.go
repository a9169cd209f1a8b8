package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/di"
	"github.com/listenupapp/audiobook-mcp/internal/di/providers"
	"github.com/listenupapp/audiobook-mcp/internal/domain"
)

func (a *app) catalogCommand() *cobra.Command {
	var (
		facet  string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "catalog [query]",
		Short: "List or search the configured catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := a.container(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = di.Shutdown(injector) }()

			handle := do.MustInvoke[*providers.CatalogHandle](injector)
			ctx := commandContext(cmd)

			var books []domain.Book
			if len(args) == 0 {
				books = handle.All(ctx)
				if limit > 0 && len(books) > limit {
					books = books[:limit]
				}
			} else {
				if limit <= 0 {
					limit = len(handle.All(ctx))
				}
				books, err = handle.Search(ctx, args[0], catalog.Facet(facet), limit)
				if err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), books)
			}
			printBooks(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()), books)
			return nil
		},
	}

	cmd.Flags().StringVar(&facet, "type", string(catalog.FacetAll), "search field (title, author, genre, all)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of books (0 means no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print books as JSON")
	return cmd
}

func printBooks(w io.Writer, s styles, books []domain.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, s.dim("No books found."))
		return
	}

	header := fmt.Sprintf("%d books", len(books))
	if len(books) == 1 {
		header = "1 book"
	}
	fmt.Fprintln(w, s.sectionHeader(header))
	for i, b := range books {
		fmt.Fprintf(w, "%s %s %s\n",
			s.dim(strconv.Itoa(i+1)+"."),
			s.title(b.Title),
			s.dim("by "+b.Author),
		)
		fmt.Fprintln(w, s.kv("Genre", b.Genre))
		fmt.Fprintln(w, s.kv("Narrator", b.Narrator))
		fmt.Fprintln(w, s.kv("Length", fmt.Sprintf("%dh %dm, %d chapters", b.Duration/3600, b.Duration%3600/60, b.Chapters)))
		fmt.Fprintln(w, s.kv("ID", b.ID))
	}
}
