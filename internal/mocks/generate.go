// Package mocks provides mock implementations for testing the vortex service layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockApplicationRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), jobID, candidateID).Return(app, nil)
package mocks

// Accounts and role records: GetAccount, GetCandidate, GetEmployer, UpdateProfile, SetMediaURL, Register
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_repository_mock.go github.com/workvortex/vortex-api/internal/core ProfileRepository

// Candidate work history: ListByCandidate, Create, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=experience_repository_mock.go github.com/workvortex/vortex-api/internal/core ExperienceRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_posting_repository_mock.go github.com/workvortex/vortex-api/internal/core JobPostingRepository

// Applications: Create, GetDetails, UpdateStatus, ListByCandidate, ListByEmployer, Exists, CountByJob
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=application_repository_mock.go github.com/workvortex/vortex-api/internal/core ApplicationRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=candidate_directory_mock.go github.com/workvortex/vortex-api/internal/core CandidateDirectory

// Object storage for profile media.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=blob_store_mock.go github.com/workvortex/vortex-api/internal/ports BlobStore
