package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Segment string  `query:"segment" default:"All" validate:"oneof=All High Mid Low"`
	Score   float64 `query:"min_score" validate:"gte=0,lte=1"`
}

func TestReadAndValidateRequest(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?min_score=0.5", nil), httptest.NewRecorder())
	var ok sampleRequest
	assert.Nil(t, ReadAndValidateRequest(c, &ok))
	assert.Equal(t, "All", ok.Segment)
	assert.Equal(t, 0.5, ok.Score)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?min_score=2&segment=Top", nil), httptest.NewRecorder())
	var bad sampleRequest
	errs, isList := ReadAndValidateRequest(c, &bad).([]ValidationError)
	require.True(t, isList)
	require.Len(t, errs, 2)
	assert.Equal(t, "segment", errs[0].Field)
	assert.Equal(t, "ERR_ONEOF", errs[0].Code)
	assert.Equal(t, "min_score", errs[1].Field)
	assert.Equal(t, "ERR_LTE", errs[1].Code)
}

func TestDataResponseWritesStatus(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, BadRequestResponse(c, []ValidationError{{Code: "ERR_REQUIRED"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":400,"message":"Bad Request","data":[{"code":"ERR_REQUIRED"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, AppErrorResponse(c, NotFoundErrorf("unknown dashboard %q", "x")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientTypedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("down"))
			return
		}
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewClient()
	var dest map[string]interface{}

	err := c.SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: srv.URL + "/bad"}, &dest)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "down", se.Body)

	err = c.SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: srv.URL + "/json"}, &dest)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestClientBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"values":[1,2,3,4,5,6,7,8]}`))
	}))
	defer srv.Close()

	opts := &RequestOptions{Method: MethodGet, URL: srv.URL}

	var raw []byte
	err := NewClient(WithMaxBodySize(8)).SendAndParse(context.Background(), opts, &raw)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Empty(t, raw)

	var dest map[string]interface{}
	err = NewClient(WithMaxBodySize(8)).SendAndParse(context.Background(), opts, &dest)
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	require.NoError(t, NewClient().SendAndParse(context.Background(), opts, &raw))
	assert.Len(t, raw, 28)
}
