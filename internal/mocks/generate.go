package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PendingRepository --dir ../domain/claim --output domain/claim --outpkg claimmock --filename pending_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProfileRepository --dir ../domain/claim --output domain/claim --outpkg claimmock --filename profile_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name UserProfileRepository --dir ../domain/claim --output domain/claim --outpkg claimmock --filename user_profile_repository_mock.go
