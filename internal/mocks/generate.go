package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/artifact --output domain/artifact --outpkg artifactmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchRepository --dir ../domain/artifact --output domain/artifact --outpkg artifactmock --filename match_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name EventFeedProvider --dir ../usecase --output usecase --outpkg usecasemock --filename event_feed_provider_mock.go
