package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bloglist-go/model"
)

var (
	goTo = model.Blog{
		ID:     "5a422aa71b54a676234d17f8",
		Title:  "Go To Statement Considered Harmful",
		Author: "Edsger W. Dijkstra",
		URL:    "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html",
		Likes:  5,
	}
	titleTest = model.Blog{
		ID:     "648f095dd8921abb6ab85759",
		Title:  "Title Test",
		Author: "Blo",
		URL:    "website.com",
		Likes:  2,
	}
	reactPatterns = model.Blog{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7}
	canonical     = model.Blog{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12}
	firstClass    = model.Blog{Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: 10}
	typeWars      = model.Blog{Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2}
)

func TestTotalLikes(t *testing.T) {
	tests := []struct {
		name  string
		blogs []model.Blog
		want  int
	}{
		{"of empty list is zero", nil, 0},
		{"when list has only one blog", []model.Blog{goTo}, 5},
		{"of a bigger list is calculated right", []model.Blog{goTo, titleTest}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalLikes(tt.blogs))
		})
	}
}

func TestFavouriteBlog(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, FavouriteBlog([]model.Blog{}))
	})

	t.Run("when list has only one blog", func(t *testing.T) {
		got := FavouriteBlog([]model.Blog{goTo})
		assert.Equal(t, &Favourite{Title: goTo.Title, Author: goTo.Author, Likes: 5}, got)
	})

	t.Run("of a bigger list is right", func(t *testing.T) {
		got := FavouriteBlog([]model.Blog{goTo, titleTest})
		assert.Equal(t, &Favourite{Title: goTo.Title, Author: goTo.Author, Likes: 5}, got)
	})

	t.Run("max later in the list", func(t *testing.T) {
		got := FavouriteBlog([]model.Blog{titleTest, goTo, canonical, firstClass})
		require.NotNil(t, got)
		assert.Equal(t, canonical.Title, got.Title)
	})

	t.Run("ties keep the earliest", func(t *testing.T) {
		twin := goTo
		twin.Title = "Twin"
		got := FavouriteBlog([]model.Blog{titleTest, goTo, twin})
		require.NotNil(t, got)
		assert.Equal(t, goTo.Title, got.Title)
	})

	t.Run("all zero likes returns the first blog", func(t *testing.T) {
		a, b := titleTest, goTo
		a.Likes, b.Likes = 0, 0
		got := FavouriteBlog([]model.Blog{a, b})
		assert.Equal(t, &Favourite{Title: a.Title, Author: a.Author, Likes: 0}, got)
	})
}

func TestMostBlogs(t *testing.T) {
	assert.Nil(t, MostBlogs(nil))

	got := MostBlogs([]model.Blog{goTo, firstClass, typeWars})
	assert.Equal(t, &AuthorBlogs{Author: "Robert C. Martin", Blogs: 2}, got)

	t.Run("ties go to the first author seen", func(t *testing.T) {
		got := MostBlogs([]model.Blog{titleTest, goTo, canonical, reactPatterns, firstClass, typeWars})
		assert.Equal(t, &AuthorBlogs{Author: "Edsger W. Dijkstra", Blogs: 2}, got)
	})
}

func TestMostLikes(t *testing.T) {
	assert.Nil(t, MostLikes([]model.Blog{}))

	got := MostLikes([]model.Blog{goTo, canonical, firstClass, typeWars, reactPatterns})
	assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, got)

	t.Run("single blog", func(t *testing.T) {
		assert.Equal(t, &AuthorLikes{Author: "Blo", Likes: 2}, MostLikes([]model.Blog{titleTest}))
	})

	t.Run("ties go to the first author seen", func(t *testing.T) {
		a := model.Blog{Author: "A", Likes: 3}
		b := model.Blog{Author: "B", Likes: 3}
		assert.Equal(t, &AuthorLikes{Author: "A", Likes: 3}, MostLikes([]model.Blog{a, b}))
	})
}

func TestHelpersDoNotMutate(t *testing.T) {
	blogs := []model.Blog{titleTest, goTo, firstClass}
	before := append([]model.Blog(nil), blogs...)

	Summarize(blogs)

	assert.Equal(t, before, blogs)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Blog{goTo, titleTest})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 7, s.TotalLikes)
	require.NotNil(t, s.FavouriteBlog)
	assert.Equal(t, goTo.Title, s.FavouriteBlog.Title)
	assert.Equal(t, &AuthorBlogs{Author: goTo.Author, Blogs: 1}, s.MostBlogs)
	assert.Equal(t, &AuthorLikes{Author: goTo.Author, Likes: 5}, s.MostLikes)

	empty := Summarize(nil)
	assert.Zero(t, empty.TotalLikes)
	assert.Nil(t, empty.FavouriteBlog)
	assert.Nil(t, empty.MostBlogs)
	assert.Nil(t, empty.MostLikes)
}
