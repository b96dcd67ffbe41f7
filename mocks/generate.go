package mocks

//go:generate mockgen -destination=./mock_fetcher.go -package=mocks github.com/etnz/coinfolio Fetcher
