package cardcrawl

import "context"

// Session is the live browser view a crawl drives. Exactly one crawler
// mutates a session at a time; all navigation goes through it.
//
// Implementations hide the automation backend. The session renders one page
// at a time and every pagination transition mutates that shared view.
type Session interface {
	// Navigate loads the given URL in the session's view.
	Navigate(ctx context.Context, url string) error

	// Eval runs a script in the page and reports whether it evaluated to a
	// truthy value. Scripts that return nothing report false with a nil
	// error.
	Eval(ctx context.Context, js string) (bool, error)

	// Elements returns the elements currently matching the CSS selector.
	// A selector that matches nothing returns an empty slice, not an error.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// HTML returns the rendered content of the current view.
	HTML(ctx context.Context) (string, error)

	// Close releases browser resources.
	// Must be called when the Session is no longer needed.
	Close() error
}

// Element is a handle to one rendered element in the session's view.
// Handles can go stale when the page re-renders; methods report that as an
// error and callers fall back to script-based interaction.
type Element interface {
	// Text returns the element's visible text.
	Text(ctx context.Context) (string, error)

	// Attribute returns the value of the named attribute, or "" if the
	// attribute is absent.
	Attribute(ctx context.Context, name string) (string, error)

	// ScrollIntoView scrolls the element into the viewport center.
	ScrollIntoView(ctx context.Context) error

	// Click performs a direct user-like click.
	Click(ctx context.Context) error

	// ForceClick dispatches a click from script, bypassing overlay
	// interception and visibility checks.
	ForceClick(ctx context.Context) error
}
