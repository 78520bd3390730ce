// Package mock provides mock implementations of cardcrawl interfaces
// for testing.
package mock

import (
	"context"

	"github.com/mwalter/cardcrawl"
)

var _ cardcrawl.Session = (*Session)(nil)

// Session is a mock implementation of cardcrawl.Session.
type Session struct {
	NavigateFn func(ctx context.Context, url string) error
	EvalFn     func(ctx context.Context, js string) (bool, error)
	ElementsFn func(ctx context.Context, selector string) ([]cardcrawl.Element, error)
	HTMLFn     func(ctx context.Context) (string, error)
	CloseFn    func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) Eval(ctx context.Context, js string) (bool, error) {
	return s.EvalFn(ctx, js)
}

func (s *Session) Elements(ctx context.Context, selector string) ([]cardcrawl.Element, error) {
	return s.ElementsFn(ctx, selector)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

var _ cardcrawl.Element = (*Element)(nil)

// Element is a mock implementation of cardcrawl.Element.
type Element struct {
	TextFn           func(ctx context.Context) (string, error)
	AttributeFn      func(ctx context.Context, name string) (string, error)
	ScrollIntoViewFn func(ctx context.Context) error
	ClickFn          func(ctx context.Context) error
	ForceClickFn     func(ctx context.Context) error
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.TextFn(ctx)
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	return e.AttributeFn(ctx, name)
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	if e.ScrollIntoViewFn == nil {
		return nil
	}
	return e.ScrollIntoViewFn(ctx)
}

func (e *Element) Click(ctx context.Context) error {
	return e.ClickFn(ctx)
}

func (e *Element) ForceClick(ctx context.Context) error {
	return e.ForceClickFn(ctx)
}
