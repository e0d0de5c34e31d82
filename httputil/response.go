package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	respBody, err := io.ReadAll(resp.Body)
	if nil != err {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}
	if len(respBody) == 0 {
		return nil, errors.New("unexpected empty response body")
	}
	return respBody, nil
}
