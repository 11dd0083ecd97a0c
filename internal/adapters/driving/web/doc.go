// Package web serves listing pages and the edit-mode socket.
//
// Visitors get a server-rendered page at /p/{id}. An admin who has logged
// in through /api/login opens /ws/{id}; every connection to the same
// property shares one editor session, so edits made in one tab show up in
// every other tab as soon as they are committed.
//
// # Edit protocol
//
// Frames are JSON envelopes in both directions:
//
//	{"type": "setField", "id": "42", "data": {"sectionId": "s1", "path": "title.text", "value": "Hi"}}
//
// The server answers each request with an "outcome" or "error" frame
// carrying the same id, and pushes a "property" frame with the whole
// document after every commit.
package web
