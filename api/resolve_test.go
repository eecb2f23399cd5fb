package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/gateway"
)

// fakeResolver satisfies both gateway interfaces for handler tests.
type fakeResolver struct {
	link    *gateway.ResolvedLink
	linkErr error
	iconURL string
	iconErr error
}

func (f *fakeResolver) Resolve(_ context.Context, _, _, _, _ string) (*gateway.ResolvedLink, error) {
	return f.link, f.linkErr
}

func (f *fakeResolver) ResolveFlagIcon(_ context.Context, _, _ string, _ int, _ string) (string, error) {
	return f.iconURL, f.iconErr
}

func TestResolveLink(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		resolver      *fakeResolver
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name:  "Resolved",
			query: "?target=Battle+of+Testing",
			resolver: &fakeResolver{link: &gateway.ResolvedLink{
				Title: "Battle of Testing",
				URL:   "https://en.wikipedia.org/wiki/Battle_of_Testing",
			}},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var resp resolveLinkResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				require.True(t, resp.Resolved)
				require.Equal(t, "Battle of Testing", resp.Title)
			},
		},
		{
			name:     "MissingPageFallsBackToNaiveURL",
			query:    "?target=No+Such+Page",
			resolver: &fakeResolver{},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var resp resolveLinkResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				require.False(t, resp.Resolved)
				require.Equal(t, "https://en.wikipedia.org/wiki/No_Such_Page", resp.URL)
			},
		},
		{
			name:     "ResolverErrorStillAnswersNaively",
			query:    "?target=Somme",
			resolver: &fakeResolver{linkErr: errors.New("wiki unreachable")},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var resp resolveLinkResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				require.False(t, resp.Resolved)
				require.NotEmpty(t, resp.URL)
			},
		},
		{
			name:     "MissingTarget",
			query:    "",
			resolver: &fakeResolver{},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestService(t, newMemStore(), newMemDrafts())
			service.links = tc.resolver

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, "/resolve/link"+tc.query, nil)
			require.NoError(t, err)

			service.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestResolveIcon(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		resolver      *fakeResolver
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name:     "Found",
			query:    "?code=France",
			resolver: &fakeResolver{iconURL: "https://commons.wikimedia.org/wiki/Special:FilePath/Flag_of_France.svg"},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var resp resolveIconResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				require.True(t, resp.Found)
				require.Contains(t, resp.URL, "Flag_of_France.svg")
			},
		},
		{
			name:     "UnknownCode",
			query:    "?code=Atlantis",
			resolver: &fakeResolver{},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var resp resolveIconResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				require.False(t, resp.Found)
			},
		},
		{
			name:     "UpstreamError",
			query:    "?code=France",
			resolver: &fakeResolver{iconErr: errors.New("commons unreachable")},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadGateway, recorder.Code)
			},
		},
		{
			name:     "MissingCode",
			query:    "",
			resolver: &fakeResolver{},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestService(t, newMemStore(), newMemDrafts())
			service.icons = tc.resolver

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, "/resolve/icon"+tc.query, nil)
			require.NoError(t, err)

			service.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
