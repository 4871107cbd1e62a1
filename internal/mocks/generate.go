package mocks

// Mock generation directives. Run `go generate ./internal/mocks/` to regenerate.

//go:generate go run go.uber.org/mock/mockgen -source=../core/connector.go -destination=mock_connector.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/repository.go -destination=mock_repository.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/diagnostics.go -destination=mock_diagnostics.go -package=mocks
//go:generate go run go.uber.org/mock/mockgen -source=../core/metrics.go -destination=mock_metrics.go -package=mocks
