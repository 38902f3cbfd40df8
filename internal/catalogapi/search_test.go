package catalogapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk/internal/domain"
)

func TestSearchCourses(t *testing.T) {
	fa := newFakeApp()
	fa.courses.courses = []domain.Course{
		{ID: 1, Topic: "Maths", Location: "London", Price: 10, Spaces: 5},
	}

	c, rec := newTestContext(t, fa, http.MethodGet, "/search?query=10", "")
	require.NoError(t, searchCourses(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fa.courses.searchCalls)
	assert.Equal(t, "10", fa.courses.lastQuery)
}

func TestSearchCoursesEmptyQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "absent", target: "/search"},
		{name: "empty", target: "/search?query="},
		{name: "blank", target: "/search?query=%20%20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fa := newFakeApp()
			c, rec := newTestContext(t, fa, http.MethodGet, tc.target, "")
			require.NoError(t, searchCourses(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, fa.courses.searchCalls, "no store call may happen for an empty query")
		})
	}
}

func TestSearchCoursesStoreError(t *testing.T) {
	fa := newFakeApp()
	fa.courses.err = assert.AnError

	c, rec := newTestContext(t, fa, http.MethodGet, "/search?query=maths", "")
	require.NoError(t, searchCourses(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
