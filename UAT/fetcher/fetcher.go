// Package fetcher is a worked example of mkmock fault injection: a download
// helper whose failure paths are exercised by tests without any failing
// transport. The hook declarations in generated_mkmock_hooks.go come from the
// directives below.
package fetcher

import (
	"fmt"
	"sync/atomic"
)

//go:generate go run github.com/measurement-kit/mkmock/mkmockgen

// ReleasedBytes counts payload bytes released by injected failures, so tests
// can observe that the cleanup path ran.
var ReleasedBytes atomic.Int64

// Fetch downloads url and returns its body. Status and body each pass
// through an injection point so tests can simulate an HTTP failure or a
// truncated payload at will.
//
//mkmock:hook FetchStatus int
//mkmock:hook FetchBody []byte
func Fetch(url string) ([]byte, error) {
	status, body := download(url)

	hookFetchStatus.Apply(&status)

	if status != 200 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, status)
	}

	hookFetchBody.ApplyCleanup(&body, func(b []byte) {
		ReleasedBytes.Add(int64(len(b)))
	})

	return body, nil
}

// download stands in for the real transport; it always succeeds here.
func download(url string) (int, []byte) {
	return 200, []byte("payload from " + url)
}
