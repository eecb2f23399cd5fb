package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/tmpstore"
)

func TestDrafts_SaveGetDelete(t *testing.T) {
	drafts := newMemDrafts()
	service := newTestService(t, newMemStore(), drafts)

	doc := service.serializer.Parse(sampleWikitext)
	draftURL := DocumentsURL + "/" + doc.ID + "/draft"

	// save
	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(http.MethodPut, draftURL, marshalBody(t, gin.H{"document": doc}))
	require.NoError(t, err)
	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	// get
	recorder = httptest.NewRecorder()
	request, err = http.NewRequest(http.MethodGet, draftURL, nil)
	require.NoError(t, err)
	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var draft tmpstore.Draft
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&draft))
	require.Equal(t, doc.ID, draft.Document.ID)
	require.Equal(t, doc.Title, draft.Document.Title)
	require.False(t, draft.SavedAt.IsZero())

	// delete
	recorder = httptest.NewRecorder()
	request, err = http.NewRequest(http.MethodDelete, draftURL, nil)
	require.NoError(t, err)
	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// gone
	recorder = httptest.NewRecorder()
	request, err = http.NewRequest(http.MethodGet, draftURL, nil)
	require.NoError(t, err)
	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDrafts_InvalidDocumentID(t *testing.T) {
	service := newTestService(t, newMemStore(), newMemDrafts())

	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(http.MethodGet, DocumentsURL+"/nope/draft", nil)
	require.NoError(t, err)

	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	resp, err := extractErrorFromBuffer(recorder.Body)
	require.NoError(t, err)
	require.Contains(t, resp.Error, "invalid document id")
}

func TestDrafts_MissingDocumentBody(t *testing.T) {
	service := newTestService(t, newMemStore(), newMemDrafts())
	doc := service.serializer.Parse(sampleWikitext)

	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(http.MethodPut, DocumentsURL+"/"+doc.ID+"/draft", marshalBody(t, gin.H{}))
	require.NoError(t, err)

	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
