package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/browse"
	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
)

var BrowseCmd = &cobra.Command{
	Use:   BrowseCmdName,
	Short: BrowseCmdShort,
	Long:  BrowseCmdLong,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		b := newBrowser(dal.Generate(viper.GetInt("catalog.size")), cmd.OutOrStdout())
		b.state.Navigate(search)
		return b.run(cmd.InOrStdin())
	},
}

func init() {
	BrowseCmd.Flags().String("search", "", "initial search text")
}

// browser drives a browse.State from line commands.
type browser struct {
	catalog *dal.Catalog
	state   browse.State
	out     io.Writer
}

func newBrowser(catalog *dal.Catalog, out io.Writer) *browser {
	return &browser{catalog: catalog, state: browse.NewState(), out: out}
}

func (b *browser) run(in io.Reader) error {
	if err := b.render(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := b.exec(scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// exec applies one command. Unknown input is reported, not returned as an error.
func (b *browser) exec(line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "search":
		b.state.Navigate(arg)
	case "make":
		m, ok := b.lookupMake(arg)
		if !ok {
			fmt.Fprintf(b.out, "unknown make %q, try 'makes'\n", arg)
			return false, nil
		}
		b.state.ToggleMake(m)
	case "more":
		if !b.state.LoadMore(browse.Apply(b.catalog, b.state).Total) {
			fmt.Fprintln(b.out, "all matching vehicles are shown")
			return false, nil
		}
	case "makes":
		for _, f := range browse.Apply(b.catalog, b.state).Facets {
			mark := " "
			if f.Selected {
				mark = "x"
			}
			fmt.Fprintf(b.out, "[%s] %s\n", mark, f.Make)
		}
		return false, nil
	default:
		fmt.Fprintf(b.out, "unknown command %q\n", name)
		return false, nil
	}
	return false, b.render()
}

func (b *browser) lookupMake(name string) (string, bool) {
	for _, m := range b.catalog.Makes() {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}

func (b *browser) render() error {
	view := browse.Apply(b.catalog, b.state)
	if len(view.Vehicles) == 0 {
		fmt.Fprintln(b.out, "no vehicles match")
		return nil
	}

	table := tablewriter.NewTable(b.out)
	table.Header("ID", "Vehicle", "Rating", "Price", "Fuel", "Review")
	for _, c := range view.Cards() {
		if err := table.Append(c.ID, c.Title, c.Rating, "$"+c.Price, c.FuelEconomy, c.Link); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(b.out, "showing %d of %d", len(view.Vehicles), view.Total)
	if view.HasMore {
		fmt.Fprint(b.out, " (type 'more' to load more)")
	}
	fmt.Fprintln(b.out)
	return nil
}
