//go:build unit

package handler

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rental-movies/internal/auth"
	"rental-movies/internal/config"
	"rental-movies/internal/data"
	"rental-movies/internal/paging"
	"rental-movies/internal/search"
	"rental-movies/internal/upload"
	"rental-movies/internal/view"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPaging = Paging{DefaultHits: 8, HitsOptions: []int{2, 4, 8}}

func TestSearchParams(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    map[string]interface{}
		wantErr string
	}{
		{
			name:   "defaults",
			target: "/movies",
			want:   map[string]interface{}{"hits": 8, "page": 1, "filters": map[string]string{}},
		},
		{
			name:   "filters and sorting",
			target: "/movies?title=park&year1=1990&hits=2&page=3&orderby=year&order=desc",
			want: map[string]interface{}{
				"hits": 2, "page": 3, "orderby": "year", "order": "desc",
				"filters": map[string]string{"title": "park", "year1": "1990"},
			},
		},
		{name: "hits is not a number", target: "/movies?hits=all", wantErr: "hits"},
		{name: "page is not a number", target: "/movies?page=two", wantErr: "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, appErr := testPaging.searchParams(httptest.NewRequest(http.MethodGet, tt.target, nil))
			if tt.wantErr != "" {
				require.NotNil(t, appErr)
				assert.Equal(t, http.StatusBadRequest, appErr.Code)
				assert.Equal(t, tt.wantErr, appErr.Field)
				return
			}
			require.Nil(t, appErr)
			got := map[string]interface{}{"hits": p.Hits, "page": p.Page, "filters": p.Filters}
			if p.OrderBy != "" {
				got["orderby"] = p.OrderBy
			}
			if p.Order != "" {
				got["order"] = p.Order
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("searchParams() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMovieListNavigation(t *testing.T) {
	movies := &mockMovieService{result: &search.PageResult[data.Movie]{
		Rows:        []data.Movie{{ID: 3, Title: "Jurassic Park"}, {ID: 4, Title: "Kill Bill"}},
		TotalRows:   7,
		PageSize:    2,
		CurrentPage: 2,
		MaxPage:     4,
	}}
	h := NewMovieHandler(movies, &mockContentService{}, testPaging, view.New(false))

	rr := httptest.NewRecorder()
	serve(h.list, rr, httptest.NewRequest(http.MethodGet, "/movies?genre=action&hits=2&page=2", nil), auth.Anonymous())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"genre": "action"}, movies.lastParams.Filters)

	var got struct {
		Rows        []data.Movie  `json:"rows"`
		TotalRows   int           `json:"total_rows"`
		Navigation  paging.Nav    `json:"navigation"`
		HitsPerPage []paging.Link `json:"hits_per_page"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got.Rows, 2)
	assert.Equal(t, 7, got.TotalRows)
	assert.Len(t, got.Navigation.Pages, 4)
	assert.True(t, got.Navigation.Pages[1].Current)
	assert.Len(t, got.HitsPerPage, 3)
}

func TestMovieListRejectsUnknownSort(t *testing.T) {
	h := NewMovieHandler(&mockMovieService{}, &mockContentService{}, testPaging, view.New(false))

	rr := httptest.NewRecorder()
	serve(h.list, rr, httptest.NewRequest(http.MethodGet, "/movies?orderby=rating", nil), auth.Anonymous())

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body view.ErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "orderby", body.Field)
}

func TestFrontPage(t *testing.T) {
	content := &mockContentService{posts: &search.PageResult[data.Content]{Rows: []data.Content{{ID: 1, Title: "News"}}}}
	movies := &mockMovieService{movies: []*data.Movie{{ID: 7, Title: "Pulp Fiction"}}}
	h := NewMovieHandler(movies, content, testPaging, view.New(false))

	rr := httptest.NewRecorder()
	serve(h.front, rr, httptest.NewRequest(http.MethodGet, "/front", nil), auth.Anonymous())
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, frontPageItems, content.lastParams.Hits)

	var got frontPage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got.News, 1)
	assert.Equal(t, "News", got.News[0].Title)
	require.Len(t, got.Movies, 1)
}

func TestPathID(t *testing.T) {
	h := NewMovieHandler(&mockMovieService{}, &mockContentService{}, testPaging, view.New(false))

	rr := httptest.NewRecorder()
	// chi leaves the URL parameter empty outside a router.
	serve(h.show, rr, httptest.NewRequest(http.MethodGet, "/movies/abc", nil), auth.Anonymous())
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSitemap(t *testing.T) {
	published := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	about := "about"
	content := &mockContentService{published: []*data.Content{
		{ID: 1, Type: data.ContentTypePage, URL: &about, Created: published, Published: &published},
		{ID: 2, Type: data.ContentTypePost, Slug: "hello-10-00-00", Created: published, Published: &published},
	}}
	movies := &mockMovieService{movies: []*data.Movie{{ID: 3, Created: published}}}
	h := NewSeoHandler(content, movies, "https://rental.example.com/")

	rr := httptest.NewRecorder()
	serve(h.sitemapHandler, rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil), auth.Anonymous())
	require.Equal(t, http.StatusOK, rr.Code)

	var set urlSet
	require.NoError(t, xml.NewDecoder(rr.Body).Decode(&set))
	var locs []string
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	want := []string{
		"https://rental.example.com/",
		"https://rental.example.com/movies",
		"https://rental.example.com/news",
		"https://rental.example.com/pages/about",
		"https://rental.example.com/news/hello-10-00-00",
		"https://rental.example.com/movies/3",
	}
	if diff := cmp.Diff(want, locs); diff != "" {
		t.Errorf("sitemap locations mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2024-01-02", set.URLs[3].LastMod)
}

func TestRobots(t *testing.T) {
	h := NewSeoHandler(&mockContentService{}, &mockMovieService{}, "https://rental.example.com")

	rr := httptest.NewRecorder()
	serve(h.robotsHandler, rr, httptest.NewRequest(http.MethodGet, "/robots.txt", nil), auth.Anonymous())

	assert.Contains(t, rr.Body.String(), "Sitemap: https://rental.example.com/sitemap.xml")
}

func TestUploadHandler(t *testing.T) {
	post := func(t *testing.T, h *UploadHandler, field, filename string, body []byte) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(body)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()
		serve(h.upload, rr, req, member)
		return rr
	}

	dir := t.TempDir()
	h := NewUploadHandler(upload.New(config.UploadConfig{Dir: dir, MaxSize: 16}), UploadPrefix, view.New(false))

	t.Run("stores the image", func(t *testing.T) {
		rr := post(t, h, "image", "poster.PNG", []byte("png-bytes"))
		require.Equal(t, http.StatusCreated, rr.Code)

		var got uploaded
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, ".png", filepath.Ext(got.File))
		assert.Equal(t, UploadPrefix+"/"+got.File, got.URL)
		stored, err := os.ReadFile(filepath.Join(dir, got.File))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(stored))
	})

	t.Run("wrong extension", func(t *testing.T) {
		rr := post(t, h, "image", "script.php", []byte("<?php"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		rr := post(t, h, "file", "poster.png", []byte("png"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("too large", func(t *testing.T) {
		rr := post(t, h, "image", "poster.gif", bytes.Repeat([]byte("x"), 64))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}
