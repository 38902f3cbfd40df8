package catalogapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCollection(t *testing.T) {
	fa := newFakeApp()
	fa.browser.docs = []map[string]interface{}{
		{"id": float64(1), "topic": "Maths"},
	}

	c, rec := newTestContext(t, fa, http.MethodGet, "/collections/Courses", "")
	c.SetPath("/collections/:collectionName")
	c.SetParamNames("collectionName")
	c.SetParamValues("Courses")
	require.NoError(t, listCollection(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Courses", fa.browser.lastName)

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Maths", docs[0]["topic"])
}

func TestListCollectionNotAllowListed(t *testing.T) {
	fa := newFakeApp()

	c, rec := newTestContext(t, fa, http.MethodGet, "/collections/Users", "")
	c.SetPath("/collections/:collectionName")
	c.SetParamNames("collectionName")
	c.SetParamValues("Users")
	require.NoError(t, listCollection(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, fa.browser.listCalls, "a non-exposed name may not reach the store")
}

func TestListCollectionGatewayDisabled(t *testing.T) {
	fa := newFakeApp()
	fa.cfg.Gateway.Enabled = false

	c, rec := newTestContext(t, fa, http.MethodGet, "/collections/Courses", "")
	c.SetPath("/collections/:collectionName")
	c.SetParamNames("collectionName")
	c.SetParamValues("Courses")
	require.NoError(t, listCollection(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, fa.browser.listCalls)
}

func TestListCollectionStoreError(t *testing.T) {
	fa := newFakeApp()
	fa.browser.err = assert.AnError

	c, rec := newTestContext(t, fa, http.MethodGet, "/collections/Orders", "")
	c.SetPath("/collections/:collectionName")
	c.SetParamNames("collectionName")
	c.SetParamValues("Orders")
	require.NoError(t, listCollection(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
