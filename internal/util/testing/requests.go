package test_utils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestRemoteAddr is the peer address of every test request. Without it gin
// resolves ClientIP to "" and ignores X-Forwarded-For.
const TestRemoteAddr = "192.0.2.1:1234"

type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	Headers        map[string]string
	Cookies        []*http.Cookie
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	Cookies    []*http.Cookie
}

// MakeRequest runs a request through router and fails the test when the
// response status differs from ExpectedStatus. A string or []byte Body is
// sent as is, anything else is JSON encoded.
func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var body io.Reader
	isJSON := false

	switch b := options.Body.(type) {
	case nil:
		body = http.NoBody
	case string:
		body = bytes.NewBufferString(b)
		isJSON = true
	case []byte:
		body = bytes.NewBuffer(b)
	case io.Reader:
		body = b
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
		isJSON = true
	}

	req, err := http.NewRequest(options.Method, options.URL, body)
	require.NoError(t, err)
	req.RemoteAddr = TestRemoteAddr

	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}
	for _, cookie := range options.Cookies {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if options.ExpectedStatus != 0 {
		require.Equal(
			t,
			options.ExpectedStatus,
			recorder.Code,
			"unexpected status for %s %s, body: %s",
			options.Method,
			options.URL,
			recorder.Body.String(),
		)
	}

	return &TestResponse{
		StatusCode: recorder.Code,
		Body:       recorder.Body.Bytes(),
		Headers:    recorder.Header(),
		Cookies:    recorder.Result().Cookies(),
	}
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	responseStruct any,
) {
	t.Helper()

	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, responseStruct), "body: %s", string(resp.Body))
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	responseStruct any,
) {
	t.Helper()

	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, responseStruct), "body: %s", string(resp.Body))
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	responseStruct any,
) {
	t.Helper()

	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, responseStruct), "body: %s", string(resp.Body))
}

func MakeDeleteRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

// MakeMultipartRequest posts content as a single file part named fieldName.
func MakeMultipartRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	fieldName, fileName string,
	content []byte,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           io.Reader(body),
		AuthToken:      authToken,
		Headers:        map[string]string{"Content-Type": writer.FormDataContentType()},
		ExpectedStatus: expectedStatus,
	})
}
