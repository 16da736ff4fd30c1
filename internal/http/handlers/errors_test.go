package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestRespondDomainErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{domain.ValidationError{Field: "start_date", Msg: "bad"}, http.StatusBadRequest},
		{domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{domain.ConflictError{Resource: "booking", Msg: "overlap"}, http.StatusConflict},
		{domain.InternalError{Err: errors.New("boom")}, http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondDomainError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("%T: status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}
