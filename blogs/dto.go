// Package blogs serves the blog post resource: listing, creation, partial
// update, owner-only deletion and aggregate statistics.
package blogs

import (
	"encoding/json"
	"math"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/model"
)

// CreateBlogRequest is the body of POST /api/blogs. Any owner fields sent by
// the client are ignored; the owner is the authenticated caller.
type CreateBlogRequest struct {
	Title  string `json:"title" example:"React patterns"`
	Author string `json:"author" example:"Michael Chan"`
	URL    string `json:"url" example:"https://reactpatterns.com/"`
	// Defaults to 0 when absent, not an integer, or negative.
	Likes json.RawMessage `json:"likes,omitempty" swaggertype:"integer" example:"7"`
}

// likes resolves the lenient create-time likes value.
func (req CreateBlogRequest) likes() int {
	n, ok := parseLikes(req.Likes)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// UpdateBlogRequest is the body of PUT /api/blogs/{id}. Absent or null fields
// are left unchanged.
type UpdateBlogRequest struct {
	Title  *string         `json:"title,omitempty" example:"React patterns"`
	Author *string         `json:"author,omitempty" example:"Michael Chan"`
	URL    *string         `json:"url,omitempty" example:"https://reactpatterns.com/"`
	Likes  json.RawMessage `json:"likes,omitempty" swaggertype:"integer" example:"8"`
}

// toUpdate converts the request into a model.BlogUpdate. Unlike creation, a
// likes value that is not an integer is rejected.
func (req UpdateBlogRequest) toUpdate() (model.BlogUpdate, error) {
	upd := model.BlogUpdate{Title: req.Title, Author: req.Author, URL: req.URL}
	if isAbsent(req.Likes) {
		return upd, nil
	}
	n, ok := parseLikes(req.Likes)
	if !ok {
		return model.BlogUpdate{}, apperror.NewValidationError(
			"blog validation failed: likes: cast to number failed for value "+string(req.Likes)+" at path `likes`", nil)
	}
	upd.Likes = &n
	return upd, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// parseLikes accepts JSON numbers with no fractional part, so 7 and 7.0 are
// both 7. Strings and fractions are rejected.
func parseLikes(raw json.RawMessage) (int, bool) {
	if isAbsent(raw) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}
