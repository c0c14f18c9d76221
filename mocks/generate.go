// Package mocks provides gomock implementations of the poller's collaborators.
//
// To regenerate the mocks after interface changes, run:
//
//	go generate ./mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=poller_mock.go github.com/mjsigg/tkd-project-poller/poller Checkpoints,Folder,Sink
