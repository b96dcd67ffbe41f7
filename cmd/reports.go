package cmd

import (
	"context"
	"fmt"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
)

func loginReport(ctx context.Context, s *coinfolio.Session) (string, error) {
	if err := s.Login(ctx); err != nil {
		return "", err
	}
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Logged in, %d accounts with a positive balance.\n", len(accounts)), nil
}

func balanceReport(ctx context.Context, s *coinfolio.Session) (string, error) {
	r, err := s.Balance(ctx)
	if err != nil {
		return "", err
	}
	return renderer.BalanceMarkdown(r), nil
}

func ordersReport(ctx context.Context, s *coinfolio.Session) (string, error) {
	h, err := s.Orders(ctx)
	if err != nil {
		return "", err
	}
	return renderer.OrdersMarkdown(h), nil
}

func accountReport(ctx context.Context, s *coinfolio.Session) (string, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return "", err
	}
	return renderer.AccountsMarkdown(accounts), nil
}

func summaryReport(ctx context.Context, s *coinfolio.Session) (string, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}
	return renderer.SummaryMarkdown(summary), nil
}
