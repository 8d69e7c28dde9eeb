package blogs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bloglist-go/apperror"
)

func TestCreateBlogRequestLikes(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{body: `{"title":"t","url":"u"}`, want: 0},
		{body: `{"title":"t","url":"u","likes":null}`, want: 0},
		{body: `{"title":"t","url":"u","likes":7}`, want: 7},
		{body: `{"title":"t","url":"u","likes":-3}`, want: 0},
		{body: `{"title":"t","url":"u","likes":"many"}`, want: 0},
		{body: `{"title":"t","url":"u","likes":2.5}`, want: 0},
		{body: `{"title":"t","url":"u","likes":7.0}`, want: 7},
		{body: `{"title":"t","url":"u","likes":1e2}`, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req CreateBlogRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.likes())
		})
	}
}

func TestUpdateBlogRequestToUpdate(t *testing.T) {
	var req UpdateBlogRequest
	require.NoError(t, json.Unmarshal([]byte(`{"likes":9}`), &req))
	upd, err := req.toUpdate()
	require.NoError(t, err)
	require.NotNil(t, upd.Likes)
	assert.Equal(t, 9, *upd.Likes)
	assert.Nil(t, upd.Title)

	req = UpdateBlogRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"new","likes":null}`), &req))
	upd, err = req.toUpdate()
	require.NoError(t, err)
	assert.Nil(t, upd.Likes)
	require.NotNil(t, upd.Title)
	assert.Equal(t, "new", *upd.Title)

	req = UpdateBlogRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"likes":8.0}`), &req))
	upd, err = req.toUpdate()
	require.NoError(t, err)
	require.NotNil(t, upd.Likes)
	assert.Equal(t, 8, *upd.Likes)

	req = UpdateBlogRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"likes":8.5}`), &req))
	_, err = req.toUpdate()
	assert.True(t, apperror.IsValidationError(err))

	req = UpdateBlogRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"likes":"lots"}`), &req))
	_, err = req.toUpdate()
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}
