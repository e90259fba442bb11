package view

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp/internal/model"
)

func TestNew_ParsesAllPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, page := range []string{"dashboard", "login", "register", "blog", "viewBlog", "edit"} {
		data := echo.Map{"Post": &model.Post{}}
		assert.NoError(t, r.Render(io.Discard, page, data, nil), page)
	}
	assert.Error(t, r.Render(io.Discard, "layout", echo.Map{}, nil))
}

func TestRender(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	user := &model.User{ID: uuid.New(), Username: "alice"}
	post := model.Post{
		ID:        uuid.New(),
		Title:     "Hello <world>",
		Content:   "First post",
		AuthorID:  user.ID,
		Author:    *user,
		CreatedAt: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		page     string
		data     echo.Map
		contains []string
	}{
		{
			name:     "dashboard anonymous",
			page:     "dashboard",
			data:     echo.Map{},
			contains: []string{"Welcome", `href="/login"`},
		},
		{
			name:     "post list",
			page:     "viewBlog",
			data:     echo.Map{"User": user, "Posts": []model.Post{post}},
			contains: []string{"Hello &lt;world&gt;", "by alice on 9 Mar 2024", "/edit/" + post.ID.String(), `value="DELETE"`, "Log out (alice)"},
		},
		{
			name:     "empty post list",
			page:     "viewBlog",
			data:     echo.Map{"User": user},
			contains: []string{"No posts yet"},
		},
		{
			name:     "edit form",
			page:     "edit",
			data:     echo.Map{"User": user, "Post": &post},
			contains: []string{`action="/viewBlog/` + post.ID.String() + `"`, `value="PUT"`, "First post"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, tt.page, tt.data, nil))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "missing", echo.Map{}, nil)
	assert.Error(t, err)
}
