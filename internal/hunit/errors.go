package hunit

import (
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/crgw/hunit-hub/internal/hunit/xmltree"
	"github.com/beevik/etree"
)

var (
	ErrEmptyResponse      = errors.New("hunit: empty response")
	ErrUnexpectedResponse = errors.New("hunit: unexpected response")
)

// ErrorEntry is one <error> of a response <errors> collection.
type ErrorEntry struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// UpstreamError is returned when HUnit answers with an <errors> collection.
type UpstreamError struct {
	Root    string
	Entries []ErrorEntry
}

func (e *UpstreamError) Error() string {
	if len(e.Entries) == 0 {
		return fmt.Sprintf("hunit: %s reported errors", e.Root)
	}

	messages := make([]string, 0, len(e.Entries))
	for _, entry := range e.Entries {
		if entry.Code != "" {
			messages = append(messages, entry.Code+": "+entry.Message)
			continue
		}
		messages = append(messages, entry.Message)
	}

	return fmt.Sprintf("hunit: %s reported errors: %s", e.Root, strings.Join(messages, "; "))
}

func newUpstreamError(root string, errorsEl *etree.Element) *UpstreamError {
	upstreamError := &UpstreamError{
		Root:    root,
		Entries: []ErrorEntry{},
	}

	for _, el := range xmltree.List(errorsEl, "error") {
		upstreamError.Entries = append(upstreamError.Entries, errorEntryFromXML(el))
	}

	return upstreamError
}

func errorEntryFromXML(el *etree.Element) ErrorEntry {
	code := xmltree.Attr(el, "code")
	if !code.Present() {
		code = xmltree.Child(el, "code")
	}

	message := strings.TrimSpace(el.Text())
	for _, candidate := range []xmltree.Value{
		xmltree.Child(el, "message"),
		xmltree.Attr(el, "message"),
		xmltree.Attr(el, "shortText"),
	} {
		if message != "" {
			break
		}
		message = strings.TrimSpace(candidate.String())
	}

	return ErrorEntry{
		Code:    strings.TrimSpace(code.String()),
		Message: message,
	}
}
