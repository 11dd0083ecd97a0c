package google

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"
)

// fakeFirestore is an in-memory stand-in for the Firestore REST API,
// covering the calls Store makes.
type fakeFirestore struct {
	mu      sync.Mutex
	docs    map[string]*firestore.Document
	commits int

	// failWith, when set, answers every request with this status.
	failWith   int
	retryAfter string
}

func newFakeFirestore(t *testing.T) (*fakeFirestore, []option.ClientOption) {
	t.Helper()
	fake := &fakeFirestore{docs: make(map[string]*firestore.Document)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, []option.ClientOption{
		option.WithEndpoint(srv.URL + "/"),
		option.WithoutAuthentication(),
	}
}

func (f *fakeFirestore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != 0 {
		if f.retryAfter != "" {
			w.Header().Set("Retry-After", f.retryAfter)
		}
		writeError(w, f.failWith)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/v1/")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(name, ":commit"):
		var req firestore.CommitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest)
			return
		}
		for _, write := range req.Writes {
			if write.Update != nil {
				f.docs[write.Update.Name] = write.Update
			}
			if write.Delete != "" {
				delete(f.docs, write.Delete)
			}
		}
		f.commits++
		writeJSON(w, &firestore.CommitResponse{})

	case r.Method == http.MethodPatch:
		var doc firestore.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeError(w, http.StatusBadRequest)
			return
		}
		doc.Name = name
		f.docs[name] = &doc
		writeJSON(w, &doc)

	case r.Method == http.MethodPost:
		var doc firestore.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeError(w, http.StatusBadRequest)
			return
		}
		doc.Name = name + "/" + r.URL.Query().Get("documentId")
		if _, exists := f.docs[doc.Name]; exists {
			writeError(w, http.StatusConflict)
			return
		}
		f.docs[doc.Name] = &doc
		writeJSON(w, &doc)

	case r.Method == http.MethodGet && isCollection(name):
		f.list(w, r, name)

	case r.Method == http.MethodGet:
		doc, ok := f.docs[name]
		if !ok {
			writeError(w, http.StatusNotFound)
			return
		}
		writeJSON(w, doc)

	default:
		writeError(w, http.StatusNotImplemented)
	}
}

// list pages through the direct children of a collection.
func (f *fakeFirestore) list(w http.ResponseWriter, r *http.Request, collection string) {
	var names []string
	for name := range f.docs {
		rest, ok := strings.CutPrefix(name, collection+"/")
		if ok && !strings.Contains(rest, "/") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	start, _ := strconv.Atoi(r.URL.Query().Get("pageToken"))
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if size <= 0 {
		size = len(names)
	}
	end := min(start+size, len(names))

	resp := &firestore.ListDocumentsResponse{}
	for _, name := range names[start:end] {
		resp.Documents = append(resp.Documents, f.docs[name])
	}
	if end < len(names) {
		resp.NextPageToken = strconv.Itoa(end)
	}
	writeJSON(w, resp)
}

// isCollection reports whether a resource name ends in a collection id.
func isCollection(name string) bool {
	_, rest, ok := strings.Cut(name, "/documents/")
	if !ok {
		return false
	}
	return strings.Count(rest, "/")%2 == 0
}

func (f *fakeFirestore) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for name := range f.docs {
		if strings.Contains(name, prefix) {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": http.StatusText(status)},
	})
}
