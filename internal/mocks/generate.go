// Package mocks provides mock implementations for testing the console.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the ports defined by the session package. To regenerate after
// interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for CredentialStorage from the session package.
// This creates MockCredentialStorage with Save, Load, and Clear.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=credential_storage_mock.go github.com/glucolab/labconsole/internal/session CredentialStorage
