// Package stats computes aggregate figures over an in-memory list of blogs.
// Every function is pure: it reads the slice in order and never modifies it.
package stats

import "github.com/user/bloglist-go/model"

// Favourite is the projection returned by FavouriteBlog.
type Favourite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogs is the result of MostBlogs.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the result of MostLikes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every statistic for one list of blogs.
type Summary struct {
	Count         int          `json:"count"`
	TotalLikes    int          `json:"totalLikes"`
	FavouriteBlog *Favourite   `json:"favouriteBlog"`
	MostBlogs     *AuthorBlogs `json:"mostBlogs"`
	MostLikes     *AuthorLikes `json:"mostLikes"`
}

// TotalLikes returns the sum of likes, 0 for an empty list.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavouriteBlog returns the blog with the most likes, or nil for an empty list.
// The scan starts from a maximum of 0 and only moves on a strictly greater
// value, so ties go to the earlier blog and a list where nobody has any likes
// yields its first element.
func FavouriteBlog(blogs []model.Blog) *Favourite {
	if len(blogs) == 0 {
		return nil
	}
	best, max := 0, 0
	for i, b := range blogs {
		if b.Likes > max {
			max = b.Likes
			best = i
		}
	}
	b := blogs[best]
	return &Favourite{Title: b.Title, Author: b.Author, Likes: b.Likes}
}

// MostBlogs returns the author with the most blogs, or nil for an empty list.
// Ties go to the author that appears first.
func MostBlogs(blogs []model.Blog) *AuthorBlogs {
	author, n, ok := leader(blogs, func(model.Blog) int { return 1 })
	if !ok {
		return nil
	}
	return &AuthorBlogs{Author: author, Blogs: n}
}

// MostLikes returns the author whose blogs add up to the most likes, or nil for
// an empty list. Ties go to the author that appears first.
func MostLikes(blogs []model.Blog) *AuthorLikes {
	author, n, ok := leader(blogs, func(b model.Blog) int { return b.Likes })
	if !ok {
		return nil
	}
	return &AuthorLikes{Author: author, Likes: n}
}

// Summarize computes all statistics at once.
func Summarize(blogs []model.Blog) Summary {
	return Summary{
		Count:         len(blogs),
		TotalLikes:    TotalLikes(blogs),
		FavouriteBlog: FavouriteBlog(blogs),
		MostBlogs:     MostBlogs(blogs),
		MostLikes:     MostLikes(blogs),
	}
}

// leader sums weight(b) per author and returns the author with the highest
// total, preferring first appearance on ties.
func leader(blogs []model.Blog, weight func(model.Blog) int) (string, int, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	var order []string
	totals := make(map[string]int)
	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += weight(b)
	}

	best := order[0]
	for _, author := range order[1:] {
		if totals[author] > totals[best] {
			best = author
		}
	}
	return best, totals[best], true
}
