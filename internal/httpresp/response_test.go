package httpresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		data  []string
		total int64
		page  int
		want  string
	}{
		{"nil data is an empty list", nil, 0, 1, `{"data":[],"total":0,"page":1,"limit":2,"has_next":false}`},
		{"more pages", []string{"a", "b"}, 5, 1, `{"data":["a","b"],"total":5,"page":1,"limit":2,"has_next":true}`},
		{"last page", []string{"e"}, 5, 3, `{"data":["e"],"total":5,"page":3,"limit":2,"has_next":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Page(c, tt.data, tt.total, tt.page, 2)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusInternalServerError, "boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}
