package testutil

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"
)

// visibleTextJS returns the first element in document order whose own text
// contains needle (case-insensitive, whitespace-collapsed) and none of whose
// children does, or null while that element is missing or not visible.
const visibleTextJS = `(needle) => {
	const skip = new Set(['SCRIPT', 'STYLE', 'NOSCRIPT', 'TEMPLATE']);
	const norm = (s) => s.replace(/\s+/g, ' ').trim().toLowerCase();
	const textOf = (el) => {
		let s = '';
		for (const n of el.childNodes) {
			if (n.nodeType === Node.TEXT_NODE) {
				s += n.nodeValue;
			} else if (n.nodeType === Node.ELEMENT_NODE && !skip.has(n.tagName)) {
				s += ' ' + textOf(n) + ' ';
			}
		}
		return s;
	};
	const want = norm(needle);
	const root = document.body || document.documentElement;
	if (!root) return null;

	const walker = document.createTreeWalker(root, NodeFilter.SHOW_ELEMENT);
	let match = null;
	for (let el = walker.currentNode; el; el = walker.nextNode()) {
		if (skip.has(el.tagName) || !norm(textOf(el)).includes(want)) continue;
		const deeper = Array.from(el.children).some(
			(c) => !skip.has(c.tagName) && norm(textOf(c)).includes(want));
		if (!deeper) {
			match = el;
			break;
		}
	}
	if (!match) return null;

	const style = window.getComputedStyle(match);
	const rect = match.getBoundingClientRect();
	if (style.visibility === 'hidden' || rect.width === 0 || rect.height === 0) return null;
	return match;
}`

// AssertionError reports a visibility assertion that did not hold in time.
type AssertionError struct {
	Text    string        // expected visible text
	Timeout time.Duration // how long the assertion polled
	Message string        // optional human-readable test-plan message
	Err     error
}

func (e *AssertionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("expected text %q to be visible within %v: %v", e.Text, e.Timeout, e.Err)
}

func (e *AssertionError) Unwrap() error {
	return e.Err
}

// ExpectVisible polls the current page until the first element containing
// text is visible. It returns an *AssertionError when timeout elapses first.
func (c *BrowserClient) ExpectVisible(text string, timeout time.Duration) error {
	page, err := c.CurrentPage()
	if err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{"step": "expect", "text": text}).Debug("asserting visible")

	pt := page.Timeout(timeout)
	defer pt.CancelTimeout()
	if _, err := pt.ElementByJS(rod.Eval(visibleTextJS, text)); err != nil {
		return &AssertionError{Text: text, Timeout: timeout, Err: err}
	}
	return nil
}
