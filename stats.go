package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/user/bloglist-go/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics over all stored blogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), appConfig.Database, false)
		if err != nil {
			return err
		}
		defer closeStore(st)

		blogs, err := st.ListBlogs(cmd.Context())
		if err != nil {
			return err
		}
		renderSummary(cmd.OutOrStdout(), stats.Summarize(blogs))
		return nil
	},
}

// renderSummary writes s as a two-column table. Statistics that are
// undefined for an empty list are shown as "-".
func renderSummary(w io.Writer, s stats.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAutoWrapText(false)

	table.Append([]string{"Blogs", strconv.Itoa(s.Count)})
	table.Append([]string{"Total likes", strconv.Itoa(s.TotalLikes)})

	favourite, mostBlogs, mostLikes := "-", "-", "-"
	if s.FavouriteBlog != nil {
		favourite = s.FavouriteBlog.Title + " by " + s.FavouriteBlog.Author + " (" + strconv.Itoa(s.FavouriteBlog.Likes) + " likes)"
	}
	if s.MostBlogs != nil {
		mostBlogs = s.MostBlogs.Author + " (" + strconv.Itoa(s.MostBlogs.Blogs) + " blogs)"
	}
	if s.MostLikes != nil {
		mostLikes = s.MostLikes.Author + " (" + strconv.Itoa(s.MostLikes.Likes) + " likes)"
	}
	table.Append([]string{"Favourite blog", favourite})
	table.Append([]string{"Most blogs", mostBlogs})
	table.Append([]string{"Most likes", mostLikes})

	table.Render()
}
