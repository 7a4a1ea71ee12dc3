package ports

import "net/http"

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
//
//go:generate go run go.uber.org/mock/mockgen -source=http.go -destination=mocks/mock_http.go -package=mocks
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
